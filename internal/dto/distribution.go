package dto

import (
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// DistributionPeriodRequest selects the period (inclusive) and optionally a single business partner.
type DistributionPeriodRequest struct {
	PeriodStart       string `json:"periodStart" binding:"required,datetime=2006-01-02"`
	PeriodEnd         string `json:"periodEnd" binding:"required,datetime=2006-01-02"`
	BusinessPartnerID string `json:"businessPartnerId"`
	Notes             string `json:"notes"`
}

// Period parses the request dates; binding has already validated the layout.
func (r DistributionPeriodRequest) Period() (domain.Period, error) {
	start, err := time.Parse(DateLayout, r.PeriodStart)
	if err != nil {
		return domain.Period{}, err
	}
	end, err := time.Parse(DateLayout, r.PeriodEnd)
	if err != nil {
		return domain.Period{}, err
	}
	return domain.Period{Start: start, End: end}, nil
}

type UpdateDistributionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=COMPLETED CANCELLED"`
	Notes  string `json:"notes"`
}

type ListDistributionsParams struct {
	BusinessPartnerID string `form:"businessPartnerId"`
	Status            string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	Limit             int    `form:"limit,default=50"`
	Offset            int    `form:"offset,default=0"`
}

type CalculateDistributionsResponse struct {
	Calculations []domain.DistributionCalculation `json:"calculations"`
	TotalShare   decimal.Decimal                  `json:"totalShare"`
}

func ToCalculateDistributionsResponse(calcs []domain.DistributionCalculation) CalculateDistributionsResponse {
	total := decimal.Zero
	for _, c := range calcs {
		total = total.Add(c.ShareAmount)
	}
	return CalculateDistributionsResponse{Calculations: calcs, TotalShare: total}
}

type ListDistributionsResponse struct {
	Distributions []domain.Distribution `json:"distributions"`
}

// CreateBusinessPartnerRequest registers an investor entitled to a revenue share.
type CreateBusinessPartnerRequest struct {
	Name            string           `json:"name" binding:"required,max=200"`
	Email           string           `json:"email" binding:"omitempty,email"`
	SharePercentage *decimal.Decimal `json:"sharePercentage" binding:"required"`
	CompanyIDs      []string         `json:"companyIds" binding:"omitempty,unique"`
}

type UpdateBusinessPartnerRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=200"`
	Email           *string          `json:"email" binding:"omitempty,email"`
	SharePercentage *decimal.Decimal `json:"sharePercentage"`
	CompanyIDs      *[]string        `json:"companyIds"`
	IsActive        *bool            `json:"isActive"`
}

type ListBusinessPartnersResponse struct {
	BusinessPartners []domain.BusinessPartner `json:"businessPartners"`
}

// CreateRevenueRequest records a manual revenue entry.
type CreateRevenueRequest struct {
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate string           `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	CompanyID       *string          `json:"companyId"`
	Description     string           `json:"description"`
}

type ListRevenueParams struct {
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	CompanyID string `form:"companyId"`
	Limit     int    `form:"limit,default=50"`
	Offset    int    `form:"offset,default=0"`
}

type ListRevenueResponse struct {
	Transactions []domain.RevenueTransaction `json:"transactions"`
}
