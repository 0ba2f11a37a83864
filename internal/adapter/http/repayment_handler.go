package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"p2p-lending-ledger/internal/usecase/repayment"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type processRepaymentReq struct {
	Amount        float64 `json:"amount" validate:"required,gt=0,dec2"`
	RepaymentDate string  `json:"repayment_date" validate:"required,datetime=2006-01-02"`
	Note          string  `json:"note"`
}

func (h *RepaymentHandler) Process(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req processRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	repaymentDate, _ := time.Parse("2006-01-02", req.RepaymentDate)

	summary, err := h.uc.Process(c.Request().Context(), repayment.ProcessInput{
		LoanID:        loanID,
		Amount:        req.Amount,
		RepaymentDate: repaymentDate,
		Note:          req.Note,
	})
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, summary)
}
