package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"p2p-lending-ledger/internal/usecase/borrower"
)

type BorrowerHandler struct{ uc *borrower.Usecase }

func NewBorrowerHandler(uc *borrower.Usecase) *BorrowerHandler { return &BorrowerHandler{uc: uc} }

type registerBorrowerReq struct {
	FullName string `json:"full_name" validate:"required,max=120"`
}

func (h *BorrowerHandler) Register(c echo.Context) error {
	var req registerBorrowerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Register(c.Request().Context(), borrower.RegisterInput{FullName: req.FullName})
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BorrowerHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *BorrowerHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BorrowerHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("borrower_id")); err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.NoContent(http.StatusNoContent)
}
