package dto

import (
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest asks for a payout from a partner wallet.
// PartnerID is ignored for partner users, who always withdraw from their own wallet.
type CreateWithdrawalRequest struct {
	PartnerID   string           `json:"partnerId"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	PartnerNote string           `json:"partnerNote" binding:"max=500"`
}

type ApproveWithdrawalRequest struct {
	AdminNote string `json:"adminNote" binding:"max=500"`
}

type RejectWithdrawalRequest struct {
	Reason    string `json:"reason" binding:"required,max=500"`
	AdminNote string `json:"adminNote" binding:"max=500"`
}

type ListWithdrawalsParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	PartnerID string `form:"partnerId"`
	Limit     int    `form:"limit,default=50"`
	Offset    int    `form:"offset,default=0"`
}

type ListWithdrawalsResponse struct {
	Withdrawals []domain.WithdrawalRequest `json:"withdrawals"`
}
