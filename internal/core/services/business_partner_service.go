package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type businessPartnerService struct {
	BaseService
	bpRepo portsrepo.BusinessPartnerRepositoryFacade
}

func NewBusinessPartnerService(bpRepo portsrepo.BusinessPartnerRepositoryFacade) portssvc.BusinessPartnerSvcFacade {
	return &businessPartnerService{bpRepo: bpRepo}
}

var _ portssvc.BusinessPartnerSvcFacade = (*businessPartnerService)(nil)

func validShare(pct *decimal.Decimal) (decimal.Decimal, error) {
	if pct == nil {
		return decimal.Zero, fmt.Errorf("%w: sharePercentage is required", apperrors.ErrValidation)
	}
	if err := accounting.ValidateSharePercentage(*pct); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return pct.Round(2), nil
}

func (s *businessPartnerService) CreateBusinessPartner(ctx context.Context, req dto.CreateBusinessPartnerRequest, userID string) (*domain.BusinessPartner, error) {
	share, err := validShare(req.SharePercentage)
	if err != nil {
		return nil, err
	}
	bp := domain.BusinessPartner{
		BusinessPartnerID: uuid.NewString(),
		Name:              strings.TrimSpace(req.Name),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		SharePercentage:   share,
		CompanyIDs:        req.CompanyIDs,
		IsActive:          true,
		AuditFields:       newAudit(userID, s.now()),
	}
	if bp.CompanyIDs == nil {
		bp.CompanyIDs = []string{}
	}
	if err := s.bpRepo.SaveBusinessPartner(ctx, bp); err != nil {
		s.LogError(ctx, err, "Failed to save business partner", slog.String("name", bp.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Business partner created", slog.String("business_partner_id", bp.BusinessPartnerID))
	return &bp, nil
}

func (s *businessPartnerService) GetBusinessPartnerByID(ctx context.Context, id string) (*domain.BusinessPartner, error) {
	bp, err := s.bpRepo.FindBusinessPartnerByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get business partner", slog.String("business_partner_id", id))
		}
		return nil, err
	}
	return bp, nil
}

func (s *businessPartnerService) ListBusinessPartners(ctx context.Context, activeOnly bool) ([]domain.BusinessPartner, error) {
	bps, err := s.bpRepo.ListBusinessPartners(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list business partners")
		return nil, err
	}
	if bps == nil {
		return []domain.BusinessPartner{}, nil
	}
	return bps, nil
}

func (s *businessPartnerService) UpdateBusinessPartner(ctx context.Context, id string, req dto.UpdateBusinessPartnerRequest, userID string) (*domain.BusinessPartner, error) {
	bp, err := s.bpRepo.FindBusinessPartnerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		bp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		bp.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.SharePercentage != nil {
		if bp.SharePercentage, err = validShare(req.SharePercentage); err != nil {
			return nil, err
		}
	}
	if req.CompanyIDs != nil {
		bp.CompanyIDs = *req.CompanyIDs
	}
	if req.IsActive != nil {
		bp.IsActive = *req.IsActive
	}
	touch(&bp.AuditFields, userID, s.now())

	if err := s.bpRepo.UpdateBusinessPartner(ctx, *bp); err != nil {
		s.LogError(ctx, err, "Failed to update business partner", slog.String("business_partner_id", id))
		return nil, err
	}
	return bp, nil
}

func (s *businessPartnerService) DeactivateBusinessPartner(ctx context.Context, id string, userID string) error {
	if err := s.bpRepo.DeactivateBusinessPartner(ctx, id, userID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate business partner", slog.String("business_partner_id", id))
		}
		return err
	}
	s.LogInfo(ctx, "Business partner deactivated", slog.String("business_partner_id", id))
	return nil
}

type revenueService struct {
	BaseService
	revenueRepo portsrepo.RevenueRepositoryFacade
}

func NewRevenueService(revenueRepo portsrepo.RevenueRepositoryFacade) portssvc.RevenueSvcFacade {
	return &revenueService{revenueRepo: revenueRepo}
}

var _ portssvc.RevenueSvcFacade = (*revenueService)(nil)

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperrors.ErrValidation, field)
	}
	return t, nil
}

func (s *revenueService) RecordRevenue(ctx context.Context, req dto.CreateRevenueRequest, userID string) (*domain.RevenueTransaction, error) {
	if req.Amount == nil || !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	date, err := parseDate("transactionDate", req.TransactionDate)
	if err != nil {
		return nil, err
	}
	rev := domain.RevenueTransaction{
		RevenueID:       uuid.NewString(),
		Amount:          req.Amount.Round(2),
		TransactionDate: date,
		CompanyID:       req.CompanyID,
		Description:     req.Description,
		AuditFields:     newAudit(userID, s.now()),
	}
	if err := s.revenueRepo.SaveRevenue(ctx, rev); err != nil {
		s.LogError(ctx, err, "Failed to save revenue transaction")
		return nil, err
	}
	s.LogInfo(ctx, "Revenue recorded", slog.String("revenue_id", rev.RevenueID), slog.String("amount", rev.Amount.StringFixed(2)))
	return &rev, nil
}

func (s *revenueService) ListRevenue(ctx context.Context, params dto.ListRevenueParams) ([]domain.RevenueTransaction, error) {
	filter := domain.RevenueFilter{Limit: params.Limit, Offset: params.Offset}
	var err error
	if params.From != "" {
		if filter.From, err = parseDate("from", params.From); err != nil {
			return nil, err
		}
	}
	if params.To != "" {
		if filter.To, err = parseDate("to", params.To); err != nil {
			return nil, err
		}
	}
	if params.CompanyID != "" {
		filter.CompanyIDs = []string{params.CompanyID}
	}

	txns, err := s.revenueRepo.ListRevenue(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list revenue")
		return nil, err
	}
	if txns == nil {
		return []domain.RevenueTransaction{}, nil
	}
	return txns, nil
}
