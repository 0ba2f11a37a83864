package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"p2p-lending-ledger/internal/usecase/portfolio"
)

type PortfolioHandler struct{ uc *portfolio.Usecase }

func NewPortfolioHandler(uc *portfolio.Usecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, s)
}
