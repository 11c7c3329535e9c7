package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/platform/metrics"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// partnerService manages resellers. Enum fields are validated here as well as in the
// request binding so callers outside HTTP get the same guarantees.
type partnerService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepositoryFacade
}

func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade) portssvc.PartnerSvcFacade {
	return &partnerService{partnerRepo: partnerRepo}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

func parseGender(s string) (domain.Gender, error) {
	if !domain.IsValidGender(s) {
		return "", fmt.Errorf("%w: invalid gender %q", apperrors.ErrValidation, s)
	}
	return domain.Gender(strings.ToLower(s)), nil
}

func parseBloodGroup(s *string) (*domain.BloodGroup, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if !domain.IsValidBloodGroup(*s) {
		return nil, fmt.Errorf("%w: invalid blood group %q", apperrors.ErrValidation, *s)
	}
	bg := domain.BloodGroup(strings.ToUpper(*s))
	return &bg, nil
}

func parseDays(days []string) ([]domain.DayOfWeek, error) {
	out := make([]domain.DayOfWeek, 0, len(days))
	seen := make(map[domain.DayOfWeek]bool, len(days))
	for _, d := range days {
		if !domain.IsValidDayOfWeek(d) {
			return nil, fmt.Errorf("%w: invalid day %q", apperrors.ErrValidation, d)
		}
		day := domain.DayOfWeek(strings.ToLower(d))
		if seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	return out, nil
}

func (s *partnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error) {
	gender, err := parseGender(req.Gender)
	if err != nil {
		return nil, err
	}
	bloodGroup, err := parseBloodGroup(req.BloodGroup)
	if err != nil {
		return nil, err
	}
	days, err := parseDays(req.AvailableDays)
	if err != nil {
		return nil, err
	}

	partner := domain.Partner{
		PartnerID:      uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Gender:         gender,
		BloodGroup:     bloodGroup,
		Specialization: req.Specialization,
		Address:        req.Address,
		AvailableDays:  days,
		WalletBalance:  decimal.Zero,
		IsActive:       true,
		AuditFields:    newAudit(userID, s.now()),
	}
	if err := s.partnerRepo.SavePartner(ctx, partner); err != nil {
		s.LogError(ctx, err, "Failed to save partner", slog.String("email", partner.Email))
		return nil, err
	}

	s.LogInfo(ctx, "Partner created", slog.String("partner_id", partner.PartnerID))
	return &partner, nil
}

func (s *partnerService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get partner", slog.String("partner_id", partnerID))
		}
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) ListPartners(ctx context.Context, params dto.ListPartnersParams) ([]domain.Partner, error) {
	partners, err := s.partnerRepo.ListPartners(ctx, params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list partners")
		return nil, err
	}
	if partners == nil {
		return []domain.Partner{}, nil
	}
	return partners, nil
}

func (s *partnerService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error) {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		partner.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		partner.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		partner.Phone = *req.Phone
	}
	if req.Gender != nil {
		if partner.Gender, err = parseGender(*req.Gender); err != nil {
			return nil, err
		}
	}
	if req.BloodGroup != nil {
		if partner.BloodGroup, err = parseBloodGroup(req.BloodGroup); err != nil {
			return nil, err
		}
	}
	if req.Specialization != nil {
		partner.Specialization = *req.Specialization
	}
	if req.Address != nil {
		partner.Address = *req.Address
	}
	if req.AvailableDays != nil {
		if partner.AvailableDays, err = parseDays(*req.AvailableDays); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		partner.IsActive = *req.IsActive
	}
	touch(&partner.AuditFields, userID, s.now())

	if err := s.partnerRepo.UpdatePartner(ctx, *partner); err != nil {
		s.LogError(ctx, err, "Failed to update partner", slog.String("partner_id", partnerID))
		return nil, err
	}
	s.LogInfo(ctx, "Partner updated", slog.String("partner_id", partnerID))
	return partner, nil
}

func (s *partnerService) DeactivatePartner(ctx context.Context, partnerID string, userID string) error {
	if err := s.partnerRepo.DeactivatePartner(ctx, partnerID, userID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate partner", slog.String("partner_id", partnerID))
		}
		return err
	}
	s.LogInfo(ctx, "Partner deactivated", slog.String("partner_id", partnerID))
	return nil
}

// CreditWallet is the only way money enters a partner wallet; withdrawals take it out.
func (s *partnerService) CreditWallet(ctx context.Context, partnerID string, req dto.CreditWalletRequest, userID string) (*domain.Partner, error) {
	if req.Amount == nil || !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	amount := utils.RoundMoney(*req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be at least 0.01", apperrors.ErrValidation)
	}

	credit := domain.WalletCredit{
		CreditID:    uuid.NewString(),
		PartnerID:   partnerID,
		Amount:      amount,
		Note:        strings.TrimSpace(req.Note),
		AuditFields: newAudit(userID, s.now()),
	}
	partner, err := s.partnerRepo.CreditWallet(ctx, credit)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to credit wallet", slog.String("partner_id", partnerID))
		}
		return nil, err
	}

	metrics.WalletCreditsTotal.Inc()
	s.LogInfo(ctx, "Wallet credited",
		slog.String("partner_id", partnerID),
		slog.String("credit_id", credit.CreditID),
		slog.String("amount", amount.StringFixed(2)))
	return partner, nil
}
