package expense

import (
	"time"

	"go-pos/internal/authz"

	"github.com/shopspring/decimal"
)

type AddExpenseRequest struct {
	BusinessID string          `json:"businessId" validate:"required"`
	BranchID   string          `json:"branchId" validate:"required"`
	Title      string          `json:"title" validate:"required,min=2,max=255"`
	Category   string          `json:"category" validate:"max=100"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
	SpentAt    time.Time       `json:"spentAt" validate:"required"`
	Note       string          `json:"note" validate:"max=1000"`
	CreatedBy  string          `json:"createdBy" validate:"required"`
}

func (r *AddExpenseRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddExpenseRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
	if r.BranchID == "" {
		r.BranchID = s.BranchID
	}
}

type EditExpenseRequest struct {
	ID        int             `json:"id" validate:"required"`
	Title     string          `json:"title" validate:"required,min=2,max=255"`
	Category  string          `json:"category" validate:"max=100"`
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
	SpentAt   time.Time       `json:"spentAt" validate:"required"`
	Note      string          `json:"note" validate:"max=1000"`
	UpdatedBy string          `json:"updatedBy" validate:"required"`
}

func (r *EditExpenseRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
