package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/platform/metrics"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/animal-wellness/aw_backend/internal/utils/accounting"
	"github.com/google/uuid"
)

// distributionService computes revenue shares. Each business partner is evaluated
// independently over its own company scope, so overlapping scopes both receive a share.
type distributionService struct {
	BaseService
	bpRepo           portsrepo.BusinessPartnerRepositoryFacade
	revenueRepo      portsrepo.RevenueRepositoryFacade
	distributionRepo portsrepo.DistributionRepositoryFacade
}

func NewDistributionService(
	bpRepo portsrepo.BusinessPartnerRepositoryFacade,
	revenueRepo portsrepo.RevenueRepositoryFacade,
	distributionRepo portsrepo.DistributionRepositoryFacade,
	tracker utils.EventTracker,
) portssvc.DistributionSvcFacade {
	return &distributionService{
		BaseService:      BaseService{Tracker: tracker},
		bpRepo:           bpRepo,
		revenueRepo:      revenueRepo,
		distributionRepo: distributionRepo,
	}
}

var _ portssvc.DistributionSvcFacade = (*distributionService)(nil)

func (s *distributionService) period(req dto.DistributionPeriodRequest) (domain.Period, error) {
	p, err := req.Period()
	if err != nil {
		return domain.Period{}, fmt.Errorf("%w: periodStart and periodEnd must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	if err := p.Validate(); err != nil {
		return domain.Period{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return p, nil
}

func (s *distributionService) partners(ctx context.Context, businessPartnerID string) ([]domain.BusinessPartner, error) {
	if businessPartnerID != "" {
		bp, err := s.bpRepo.FindBusinessPartnerByID(ctx, businessPartnerID)
		if err != nil {
			return nil, err
		}
		return []domain.BusinessPartner{*bp}, nil
	}
	return s.bpRepo.ListBusinessPartners(ctx, true)
}

func (s *distributionService) calculate(ctx context.Context, p domain.Period, businessPartnerID string) ([]domain.DistributionCalculation, error) {
	bps, err := s.partners(ctx, businessPartnerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load business partners")
		}
		return nil, err
	}

	calcs := make([]domain.DistributionCalculation, 0, len(bps))
	for _, bp := range bps {
		total, err := s.revenueRepo.SumRevenue(ctx, p.Start, p.End, bp.CompanyIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to sum revenue", slog.String("business_partner_id", bp.BusinessPartnerID))
			return nil, err
		}
		calcs = append(calcs, domain.DistributionCalculation{
			BusinessPartnerID: bp.BusinessPartnerID,
			PartnerName:       bp.Name,
			PeriodStart:       p.Start,
			PeriodEnd:         p.End,
			TotalRevenue:      utils.RoundMoney(total),
			SharePercentage:   bp.SharePercentage,
			ShareAmount:       accounting.ShareAmount(total, bp.SharePercentage),
		})
	}
	return calcs, nil
}

func (s *distributionService) CalculateDistributions(ctx context.Context, req dto.DistributionPeriodRequest) ([]domain.DistributionCalculation, error) {
	p, err := s.period(req)
	if err != nil {
		return nil, err
	}
	calcs, err := s.calculate(ctx, p, req.BusinessPartnerID)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Distributions calculated", slog.Int("partners", len(calcs)))
	return calcs, nil
}

func (s *distributionService) CreateDistributions(ctx context.Context, req dto.DistributionPeriodRequest, userID string) ([]domain.Distribution, error) {
	p, err := s.period(req)
	if err != nil {
		return nil, err
	}
	calcs, err := s.calculate(ctx, p, req.BusinessPartnerID)
	if err != nil {
		return nil, err
	}
	if len(calcs) == 0 {
		return nil, fmt.Errorf("%w: no active business partners to distribute to", apperrors.ErrValidation)
	}

	now := s.now()
	rows := make([]domain.Distribution, len(calcs))
	for i, c := range calcs {
		rows[i] = domain.Distribution{
			DistributionID:    uuid.NewString(),
			BusinessPartnerID: c.BusinessPartnerID,
			PartnerName:       c.PartnerName,
			PeriodStart:       c.PeriodStart,
			PeriodEnd:         c.PeriodEnd,
			TotalRevenue:      c.TotalRevenue,
			SharePercentage:   c.SharePercentage,
			ShareAmount:       c.ShareAmount,
			Status:            domain.DistributionPending,
			Notes:             req.Notes,
			AuditFields:       newAudit(userID, now),
		}
	}

	if err := s.distributionRepo.SaveDistributions(ctx, rows); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save distributions")
		}
		return nil, err
	}

	metrics.DistributionsCreatedTotal.Add(float64(len(rows)))
	s.track(userID, utils.EventDistributionCreated, map[string]any{
		"period_start": req.PeriodStart,
		"period_end":   req.PeriodEnd,
		"count":        len(rows),
	})
	s.LogInfo(ctx, "Distributions created",
		slog.Int("count", len(rows)),
		slog.String("period_start", req.PeriodStart),
		slog.String("period_end", req.PeriodEnd))
	return rows, nil
}

func (s *distributionService) UpdateDistributionStatus(ctx context.Context, id string, req dto.UpdateDistributionStatusRequest, userID string) (*domain.Distribution, error) {
	next := domain.DistributionStatus(req.Status)
	if next != domain.DistributionCompleted && next != domain.DistributionCancelled {
		return nil, fmt.Errorf("%w: status must be COMPLETED or CANCELLED", apperrors.ErrValidation)
	}

	current, err := s.distributionRepo.FindDistributionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: distribution %s is %s", apperrors.ErrConflict, id, current.Status)
	}

	now := s.now()
	var expense *domain.Expense
	// A zero share is completed without a ledger entry.
	if next == domain.DistributionCompleted && current.ShareAmount.IsPositive() {
		expense = &domain.Expense{
			ExpenseID: uuid.NewString(),
			Category:  domain.ExpensePartnerDistribution,
			Amount:    current.ShareAmount,
			Description: fmt.Sprintf("Revenue share for %s, %s to %s",
				current.PartnerName, current.PeriodStart.Format(dto.DateLayout), current.PeriodEnd.Format(dto.DateLayout)),
			ExpenseDate: now,
			Status:      domain.ExpensePaid,
			ReferenceID: &current.DistributionID,
			AuditFields: newAudit(userID, now),
		}
	}

	updated, err := s.distributionRepo.UpdateDistributionStatus(ctx, id, next, req.Notes, expense, userID, now)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update distribution status", slog.String("distribution_id", id))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Distribution status updated",
		slog.String("distribution_id", id),
		slog.String("status", string(next)))
	return updated, nil
}

func (s *distributionService) GetDistributionByID(ctx context.Context, id string) (*domain.Distribution, error) {
	d, err := s.distributionRepo.FindDistributionByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get distribution", slog.String("distribution_id", id))
		}
		return nil, err
	}
	return d, nil
}

func (s *distributionService) ListDistributions(ctx context.Context, params dto.ListDistributionsParams) ([]domain.Distribution, error) {
	filter := domain.DistributionFilter{
		BusinessPartnerID: params.BusinessPartnerID,
		Status:            domain.DistributionStatus(params.Status),
		Limit:             params.Limit,
		Offset:            params.Offset,
	}
	ds, err := s.distributionRepo.ListDistributions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list distributions")
		return nil, err
	}
	if ds == nil {
		return []domain.Distribution{}, nil
	}
	return ds, nil
}
