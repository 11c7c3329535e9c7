package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a ledger expense.
type ExpenseCategory string

const (
	ExpensePartnerDistribution ExpenseCategory = "PARTNER_DISTRIBUTION"
	ExpenseOperations          ExpenseCategory = "OPERATIONS"
	ExpenseSalary              ExpenseCategory = "SALARY"
	ExpenseMarketing           ExpenseCategory = "MARKETING"
	ExpenseLogistics           ExpenseCategory = "LOGISTICS"
	ExpenseUtilities           ExpenseCategory = "UTILITIES"
	ExpenseOther               ExpenseCategory = "OTHER"
)

// IsValid reports whether c is a known category.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpensePartnerDistribution, ExpenseOperations, ExpenseSalary, ExpenseMarketing,
		ExpenseLogistics, ExpenseUtilities, ExpenseOther:
		return true
	}
	return false
}

// ExpenseStatus is the payment state of an expense.
type ExpenseStatus string

const (
	ExpensePending   ExpenseStatus = "PENDING"
	ExpensePaid      ExpenseStatus = "PAID"
	ExpenseCancelled ExpenseStatus = "CANCELLED"
)

// IsValid reports whether s is a known expense status.
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpensePending, ExpensePaid, ExpenseCancelled:
		return true
	}
	return false
}

// Expense is an outgoing ledger entry.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Status      ExpenseStatus   `json:"status"`
	// ReferenceID points at the withdrawal or distribution that produced the expense.
	ReferenceID *string `json:"referenceID,omitempty"`
	AuditFields
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	Category ExpenseCategory
	Status   ExpenseStatus
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ExpenseCategoryTotal is one row of a monthly summary.
type ExpenseCategoryTotal struct {
	Category ExpenseCategory `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}
