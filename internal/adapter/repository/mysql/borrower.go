package mysql

import (
	"context"

	"gorm.io/gorm"

	borrowerDomain "p2p-lending-ledger/internal/domain/borrower"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

// withLoans preloads the loan history with its nested contribution and
// repayment sequences, all in append order.
func (r *BorrowerRepository) withLoans(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Loans", func(db *gorm.DB) *gorm.DB {
			return db.Order("loans.id ASC")
		}).
		Preload("Loans.Contributions", func(db *gorm.DB) *gorm.DB {
			return db.Order("lender_contributions.id ASC")
		}).
		Preload("Loans.Repayments", func(db *gorm.DB) *gorm.DB {
			return db.Order("loan_repayments.id ASC")
		})
}

func (r *BorrowerRepository) Create(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowerRepository) Save(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(b).Error
}

func (r *BorrowerRepository) GetByBorrowerID(ctx context.Context, borrowerID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.withLoans(ctx).Where("borrower_id = ?", borrowerID).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *BorrowerRepository) GetByLoanID(ctx context.Context, loanID string) (*borrowerDomain.Borrower, error) {
	var loan borrowerDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&loan)
	if res.Error != nil {
		return nil, res.Error
	}
	var out borrowerDomain.Borrower
	res = r.withLoans(ctx).Where("id = ?", loan.BorrowerRef).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *BorrowerRepository) List(ctx context.Context) ([]*borrowerDomain.Borrower, error) {
	var out []*borrowerDomain.Borrower
	res := r.withLoans(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *BorrowerRepository) Delete(ctx context.Context, borrowerID string) error {
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Delete(&borrowerDomain.Borrower{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
