package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessPartner is an investor/owner receiving a percentage of revenue.
// Share percentages are not required to sum to 100 across partners.
type BusinessPartner struct {
	BusinessPartnerID string          `json:"businessPartnerID"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	SharePercentage   decimal.Decimal `json:"sharePercentage"`
	// CompanyIDs limits revenue attribution; empty means all revenue.
	CompanyIDs []string `json:"companyIDs"`
	IsActive   bool     `json:"isActive"`
	AuditFields
}

// RevenueTransaction is a unit of income counted by the distribution calculator.
type RevenueTransaction struct {
	RevenueID       string          `json:"revenueID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	CompanyID       *string         `json:"companyID,omitempty"`
	OrderID         *string         `json:"orderID,omitempty"`
	Description     string          `json:"description"`
	AuditFields
}

// RevenueFilter narrows revenue listings and sums.
type RevenueFilter struct {
	From       time.Time
	To         time.Time
	CompanyIDs []string
	Limit      int
	Offset     int
}
