package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the lifecycle state of a wallet withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalApproved || s == WithdrawalRejected
}

// IsValid reports whether s is a known withdrawal status.
func (s WithdrawalStatus) IsValid() bool {
	switch s {
	case WithdrawalPending, WithdrawalApproved, WithdrawalRejected:
		return true
	}
	return false
}

// WithdrawalRequest asks for money to be paid out of a partner's wallet.
type WithdrawalRequest struct {
	WithdrawalID    string           `json:"withdrawalID"`
	PartnerID       string           `json:"partnerID"`
	PartnerName     string           `json:"partnerName,omitempty"`
	PartnerEmail    string           `json:"partnerEmail,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	Status          WithdrawalStatus `json:"status"`
	PartnerNote     string           `json:"partnerNote"`
	AdminNote       string           `json:"adminNote"`
	RejectionReason string           `json:"rejectionReason"`
	ProcessedBy     *string          `json:"processedBy,omitempty"`
	ProcessedAt     *time.Time       `json:"processedAt,omitempty"`
	ExpenseID       *string          `json:"expenseID,omitempty"`
	AuditFields
}

// WithdrawalDecision carries the admin-side fields written on a terminal transition.
type WithdrawalDecision struct {
	Status          WithdrawalStatus
	AdminNote       string
	RejectionReason string
	ProcessedBy     string
	ProcessedAt     time.Time
	ExpenseID       *string
}

// WithdrawalFilter narrows withdrawal listings.
type WithdrawalFilter struct {
	PartnerID string
	Status    WithdrawalStatus
	Limit     int
	Offset    int
}
