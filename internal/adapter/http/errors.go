package http

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	borrowerDomain "p2p-lending-ledger/internal/domain/borrower"
	lenderDomain "p2p-lending-ledger/internal/domain/lender"
	loanUC "p2p-lending-ledger/internal/usecase/loan"
	"p2p-lending-ledger/pkg/finmath"
)

// writeError maps engine errors onto HTTP statuses: invalid input 400,
// missing entities 404, business-rule conflicts (insufficient funds,
// distribution mismatch, already-completed loan) 409, anything else 500.
func errorResponse(err error) (int, ErrorResponse) {
	var insufficient *loanUC.InsufficientFundsError
	var mismatch *loanUC.DistributionMismatchError

	switch {
	case errors.As(err, &insufficient):
		return http.StatusConflict, ErrorResponse{
			Error:     err.Error(),
			Available: &insufficient.Available,
			Required:  &insufficient.Required,
		}
	case errors.As(err, &mismatch):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	case errors.Is(err, borrowerDomain.ErrAlreadyCompleted):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	case errors.Is(err, lenderDomain.ErrNotFound),
		errors.Is(err, borrowerDomain.ErrNotFound),
		errors.Is(err, borrowerDomain.ErrLoanNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}
	case errors.Is(err, loanUC.ErrInvalidAmount),
		errors.Is(err, loanUC.ErrNoLendersAvailable),
		errors.Is(err, borrowerDomain.ErrInvalidAmount),
		errors.Is(err, lenderDomain.ErrInvalidAmount),
		errors.Is(err, finmath.ErrNegativeDateRange),
		errors.Is(err, finmath.ErrInvalidPrincipal),
		errors.Is(err, finmath.ErrInvalidTenure),
		errors.Is(err, finmath.ErrInvalidRate):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: err.Error()}
}
