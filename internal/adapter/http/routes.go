package http

import (
	"github.com/labstack/echo/v4"
)

// Handlers bundles every route group the API serves.
type Handlers struct {
	Health     *Handler
	Lenders    *LenderHandler
	Borrowers  *BorrowerHandler
	Loans      *LoanHandler
	Repayments *RepaymentHandler
	Portfolio  *PortfolioHandler
	Calculator *CalculatorHandler
}

// Register wires the handlers into the echo instance. Mutating routes are
// expected to sit behind the idempotency middleware, applied by the caller.
func Register(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Health)

	e.POST("/lenders", h.Lenders.Register)
	e.GET("/lenders", h.Lenders.List)
	e.GET("/lenders/:lender_id", h.Lenders.Get)
	e.DELETE("/lenders/:lender_id", h.Lenders.Delete)
	e.POST("/lenders/:lender_id/investments", h.Lenders.Invest)
	e.GET("/lenders/:lender_id/transactions", h.Lenders.Transactions)

	e.POST("/borrowers", h.Borrowers.Register)
	e.GET("/borrowers", h.Borrowers.List)
	e.GET("/borrowers/:borrower_id", h.Borrowers.Get)
	e.DELETE("/borrowers/:borrower_id", h.Borrowers.Delete)

	e.POST("/borrowers/:borrower_id/loans", h.Loans.Create)
	e.GET("/loans/:loan_id", h.Loans.Get)
	e.POST("/loans/:loan_id/repayments", h.Repayments.Process)

	e.GET("/portfolio/summary", h.Portfolio.Summary)

	e.POST("/calculator/emi", h.Calculator.EMI)
	e.POST("/calculator/interest", h.Calculator.Interest)
	e.POST("/calculator/maturity", h.Calculator.Maturity)
	e.POST("/calculator/schedule", h.Calculator.Schedule)
	e.POST("/calculator/months", h.Calculator.Months)
}
