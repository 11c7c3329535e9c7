package dto

import (
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest defines the data needed to register a reseller.
type CreatePartnerRequest struct {
	Name           string   `json:"name" binding:"required,max=200"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          string   `json:"phone" binding:"required"`
	Gender         string   `json:"gender" binding:"required,gender"`
	BloodGroup     *string  `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Specialization string   `json:"specialization"`
	Address        string   `json:"address"`
	AvailableDays  []string `json:"availableDays" binding:"omitempty,unique,dive,dayofweek"`
}

// UpdatePartnerRequest uses pointers to distinguish omitted fields from zero values.
type UpdatePartnerRequest struct {
	Name           *string   `json:"name" binding:"omitempty,max=200"`
	Email          *string   `json:"email" binding:"omitempty,email"`
	Phone          *string   `json:"phone"`
	Gender         *string   `json:"gender" binding:"omitempty,gender"`
	BloodGroup     *string   `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Specialization *string   `json:"specialization"`
	Address        *string   `json:"address"`
	AvailableDays  *[]string `json:"availableDays" binding:"omitempty,dive,dayofweek"`
	IsActive       *bool     `json:"isActive"`
}

// CreditWalletRequest tops up a partner wallet, e.g. with earned commission.
type CreditWalletRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Note   string           `json:"note" binding:"max=500"`
}

type PartnerResponse struct {
	PartnerID      string          `json:"partnerID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Gender         string          `json:"gender"`
	BloodGroup     string          `json:"bloodGroup,omitempty"`
	Specialization string          `json:"specialization"`
	Address        string          `json:"address"`
	AvailableDays  []string        `json:"availableDays"`
	WalletBalance  decimal.Decimal `json:"walletBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	days := make([]string, len(p.AvailableDays))
	for i, d := range p.AvailableDays {
		days[i] = string(d)
	}
	resp := PartnerResponse{
		PartnerID:      p.PartnerID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Gender:         string(p.Gender),
		Specialization: p.Specialization,
		Address:        p.Address,
		AvailableDays:  days,
		WalletBalance:  p.WalletBalance,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		LastUpdatedAt:  p.LastUpdatedAt,
	}
	if p.BloodGroup != nil {
		resp.BloodGroup = string(*p.BloodGroup)
	}
	return resp
}

type ListPartnersParams struct {
	ActiveOnly bool `form:"activeOnly"`
	Limit      int  `form:"limit,default=20"`
	Offset     int  `form:"offset,default=0"`
}

type ListPartnersResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

func ToListPartnersResponse(partners []domain.Partner) ListPartnersResponse {
	out := make([]PartnerResponse, len(partners))
	for i := range partners {
		out[i] = ToPartnerResponse(&partners[i])
	}
	return ListPartnersResponse{Partners: out}
}
