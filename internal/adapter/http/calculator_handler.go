package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"p2p-lending-ledger/pkg/finmath"
)

// CalculatorHandler exposes the interest arithmetic directly; there is no
// state behind these endpoints.
type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler { return &CalculatorHandler{} }

type emiReq struct {
	Principal    float64 `json:"principal" validate:"required,gt=0,dec2"`
	MonthlyRate  float64 `json:"monthly_rate" validate:"gte=0,lte=100"`
	TenureMonths int     `json:"tenure_months" validate:"required,gt=0"`
}

func (h *CalculatorHandler) EMI(c echo.Context) error {
	var req emiReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	emi, err := finmath.EMI(req.Principal, req.MonthlyRate, req.TenureMonths)
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"principal":     req.Principal,
		"monthly_rate":  req.MonthlyRate,
		"tenure_months": req.TenureMonths,
		"emi":           emi,
		"total_payable": finmath.Round2(emi * float64(req.TenureMonths)),
	})
}

type interestReq struct {
	Principal   float64 `json:"principal" validate:"required,gt=0,dec2"`
	MonthlyRate float64 `json:"monthly_rate" validate:"required,gt=0,lte=100"`
	Months      float64 `json:"months" validate:"required,gt=0"`
}

func (h *CalculatorHandler) Interest(c echo.Context) error {
	var req interestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	simple := finmath.SimpleInterest(req.Principal, req.MonthlyRate, req.Months)
	compound := finmath.CompoundInterestMonthly(req.Principal, req.MonthlyRate, req.Months)
	return c.JSON(http.StatusOK, map[string]any{
		"principal":         req.Principal,
		"monthly_rate":      req.MonthlyRate,
		"months":            req.Months,
		"simple_interest":   finmath.Round2(simple),
		"compound_interest": finmath.Round2(compound),
		"total_repayment":   finmath.Round2(req.Principal + simple),
	})
}

type maturityReq struct {
	Principal      float64 `json:"principal" validate:"required,gt=0,dec2"`
	MonthlyRate    float64 `json:"monthly_rate" validate:"required,gt=0,lte=100"`
	StartDate      string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	DurationMonths int     `json:"duration_months" validate:"required,gt=0"`
}

func (h *CalculatorHandler) Maturity(c echo.Context) error {
	var req maturityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	m, err := finmath.LoanMaturity(req.Principal, req.MonthlyRate, start, req.DurationMonths)
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, m)
}

type scheduleReq struct {
	Principal    float64 `json:"principal" validate:"required,gt=0,dec2"`
	MonthlyRate  float64 `json:"monthly_rate" validate:"gte=0,lte=100"`
	TenureMonths int     `json:"tenure_months" validate:"required,gt=0,lte=600"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
}

func (h *CalculatorHandler) Schedule(c echo.Context) error {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	schedule, err := finmath.AmortizationSchedule(req.Principal, req.MonthlyRate, req.TenureMonths, start)
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule": schedule})
}

type monthsReq struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (h *CalculatorHandler) Months(c echo.Context) error {
	var req monthsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	months, err := finmath.MonthsBetween(start, end)
	if err != nil {
		return c.JSON(errorResponse(err))
	}
	return c.JSON(http.StatusOK, map[string]any{"months": months})
}
