package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"p2p-lending-ledger/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type manualAllocationReq struct {
	LenderID string  `json:"lender_id" validate:"required,hex32"`
	Amount   float64 `json:"amount" validate:"required,gt=0,dec2"`
}

type createLoanReq struct {
	Amount      float64 `json:"amount" validate:"required,gt=0,dec2"`
	MonthlyRate float64 `json:"monthly_rate" validate:"required,gt=0,lte=100"`
	// Canonical date `YYYY-MM-DD`
	LoanDate string `json:"loan_date" validate:"required,datetime=2006-01-02"`
	Note     string `json:"note"`
	// Distribution, when present, is a manual per-lender split; omitted
	// means the proportional allocation is computed automatically.
	Distribution []manualAllocationReq `json:"distribution" validate:"omitempty,dive"`
}

func (h *LoanHandler) Create(c echo.Context) error {
	borrowerID := c.Param("borrower_id")
	if borrowerID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing borrower_id path param"})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	loanDate, _ := time.Parse("2006-01-02", req.LoanDate)

	manual := make([]loan.ManualAllocation, 0, len(req.Distribution))
	for _, m := range req.Distribution {
		manual = append(manual, loan.ManualAllocation{LenderID: m.LenderID, Amount: m.Amount})
	}

	dto, err := h.uc.Create(c.Request().Context(), loan.CreateInput{
		BorrowerID:  borrowerID,
		Amount:      req.Amount,
		MonthlyRate: req.MonthlyRate,
		LoanDate:    loanDate,
		Note:        req.Note,
		Manual:      manual,
	})
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, dto)
}
