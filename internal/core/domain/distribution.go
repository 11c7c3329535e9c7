package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DistributionStatus tracks payment of a revenue share.
type DistributionStatus string

const (
	DistributionPending   DistributionStatus = "PENDING"
	DistributionCompleted DistributionStatus = "COMPLETED"
	DistributionCancelled DistributionStatus = "CANCELLED"
)

// IsValid reports whether s is a known distribution status.
func (s DistributionStatus) IsValid() bool {
	switch s {
	case DistributionPending, DistributionCompleted, DistributionCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the payment status may move from s to next.
// Only PENDING is mutable; COMPLETED and CANCELLED are terminal.
func (s DistributionStatus) CanTransitionTo(next DistributionStatus) bool {
	return s == DistributionPending && (next == DistributionCompleted || next == DistributionCancelled)
}

// Distribution is a persisted revenue share for one business partner and period.
type Distribution struct {
	DistributionID    string             `json:"distributionID"`
	BusinessPartnerID string             `json:"businessPartnerID"`
	PartnerName       string             `json:"partnerName,omitempty"`
	PeriodStart       time.Time          `json:"periodStart"`
	PeriodEnd         time.Time          `json:"periodEnd"`
	TotalRevenue      decimal.Decimal    `json:"totalRevenue"`
	SharePercentage   decimal.Decimal    `json:"sharePercentage"`
	ShareAmount       decimal.Decimal    `json:"shareAmount"`
	Status            DistributionStatus `json:"status"`
	PaidAt            *time.Time         `json:"paidAt,omitempty"`
	Notes             string             `json:"notes"`
	AuditFields
}

// DistributionCalculation is an unpersisted preview row.
type DistributionCalculation struct {
	BusinessPartnerID string          `json:"businessPartnerID"`
	PartnerName       string          `json:"partnerName"`
	PeriodStart       time.Time       `json:"periodStart"`
	PeriodEnd         time.Time       `json:"periodEnd"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	SharePercentage   decimal.Decimal `json:"sharePercentage"`
	ShareAmount       decimal.Decimal `json:"shareAmount"`
}

// Period is an inclusive date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// Validate rejects ranges that end before they start.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("period start and end are required")
	}
	if p.End.Before(p.Start) {
		return fmt.Errorf("period end %s is before start %s", p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
	}
	return nil
}

// DistributionFilter narrows distribution listings.
type DistributionFilter struct {
	BusinessPartnerID string
	Status            DistributionStatus
	Limit             int
	Offset            int
}
