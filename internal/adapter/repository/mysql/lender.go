package mysql

import (
	"context"

	"gorm.io/gorm"

	lenderDomain "p2p-lending-ledger/internal/domain/lender"
)

type LenderRepository struct{ db *gorm.DB }

func NewLenderRepository(db *gorm.DB) *LenderRepository { return &LenderRepository{db: db} }

// withTransactions preloads the transaction sequence in append order so the
// aggregate round-trips field-for-field.
func (r *LenderRepository) withTransactions(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("lender_transactions.id ASC")
	})
}

func (r *LenderRepository) Create(ctx context.Context, l *lenderDomain.Lender) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LenderRepository) Save(ctx context.Context, l *lenderDomain.Lender) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(l).Error
}

func (r *LenderRepository) GetByLenderID(ctx context.Context, lenderID string) (*lenderDomain.Lender, error) {
	var out lenderDomain.Lender
	res := r.withTransactions(ctx).Where("lender_id = ?", lenderID).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LenderRepository) List(ctx context.Context) ([]*lenderDomain.Lender, error) {
	var out []*lenderDomain.Lender
	res := r.withTransactions(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *LenderRepository) Delete(ctx context.Context, lenderID string) error {
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Delete(&lenderDomain.Lender{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
