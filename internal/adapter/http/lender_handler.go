package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"p2p-lending-ledger/internal/usecase/lender"
)

type LenderHandler struct{ uc *lender.Usecase }

func NewLenderHandler(uc *lender.Usecase) *LenderHandler { return &LenderHandler{uc: uc} }

type registerLenderReq struct {
	FullName string `json:"full_name" validate:"required,max=120"`
}

type investReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
	Note   string  `json:"note"`
}

func (h *LenderHandler) Register(c echo.Context) error {
	var req registerLenderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Register(c.Request().Context(), lender.RegisterInput{FullName: req.FullName})
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LenderHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LenderHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("lender_id"))
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LenderHandler) Invest(c echo.Context) error {
	var req investReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Invest(c.Request().Context(), c.Param("lender_id"), req.Amount, req.Note)
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LenderHandler) Transactions(c echo.Context) error {
	txs, err := h.uc.Transactions(c.Request().Context(), c.Param("lender_id"))
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, txs)
}

func (h *LenderHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("lender_id")); err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.NoContent(http.StatusNoContent)
}
