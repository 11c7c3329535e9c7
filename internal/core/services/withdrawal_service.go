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
	"github.com/google/uuid"
)

// withdrawalService runs the pending -> approved | rejected workflow. The transition,
// the wallet debit and the expense entry are committed together by the repository;
// the partner is notified afterwards on a best-effort basis.
type withdrawalService struct {
	BaseService
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade
	partnerRepo    portsrepo.PartnerReader
	notifier       portssvc.Notifier
}

func NewWithdrawalService(
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade,
	partnerRepo portsrepo.PartnerReader,
	notifier portssvc.Notifier,
	tracker utils.EventTracker,
) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		BaseService:    BaseService{Tracker: tracker},
		withdrawalRepo: withdrawalRepo,
		partnerRepo:    partnerRepo,
		notifier:       notifier,
	}
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

func (s *withdrawalService) CreateWithdrawal(ctx context.Context, partnerID string, req dto.CreateWithdrawalRequest, userID string) (*domain.WithdrawalRequest, error) {
	if req.Amount == nil || !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	amount := utils.RoundMoney(*req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be at least 0.01", apperrors.ErrValidation)
	}

	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if !partner.IsActive {
		return nil, fmt.Errorf("%w: partner %s is inactive", apperrors.ErrValidation, partnerID)
	}
	// Checked again at approval time against the locked balance.
	if amount.GreaterThan(partner.WalletBalance) {
		return nil, fmt.Errorf("%w: requested %s, available %s",
			apperrors.ErrInsufficientBalance, amount.StringFixed(2), partner.WalletBalance.StringFixed(2))
	}

	w := domain.WithdrawalRequest{
		WithdrawalID: uuid.NewString(),
		PartnerID:    partnerID,
		PartnerName:  partner.Name,
		PartnerEmail: partner.Email,
		Amount:       amount,
		Status:       domain.WithdrawalPending,
		PartnerNote:  req.PartnerNote,
		AuditFields:  newAudit(userID, s.now()),
	}
	if err := s.withdrawalRepo.SaveWithdrawal(ctx, w); err != nil {
		s.LogError(ctx, err, "Failed to save withdrawal request", slog.String("partner_id", partnerID))
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal requested",
		slog.String("withdrawal_id", w.WithdrawalID),
		slog.String("partner_id", partnerID),
		slog.String("amount", amount.StringFixed(2)))
	return &w, nil
}

func (s *withdrawalService) GetWithdrawalByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	w, err := s.withdrawalRepo.FindWithdrawalByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get withdrawal request", slog.String("withdrawal_id", id))
		}
		return nil, err
	}
	return w, nil
}

func (s *withdrawalService) ListWithdrawals(ctx context.Context, params dto.ListWithdrawalsParams) ([]domain.WithdrawalRequest, error) {
	filter := domain.WithdrawalFilter{
		PartnerID: params.PartnerID,
		Status:    domain.WithdrawalStatus(params.Status),
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	ws, err := s.withdrawalRepo.ListWithdrawals(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list withdrawal requests")
		return nil, err
	}
	if ws == nil {
		return []domain.WithdrawalRequest{}, nil
	}
	return ws, nil
}

func (s *withdrawalService) ApproveWithdrawal(ctx context.Context, id string, req dto.ApproveWithdrawalRequest, adminUserID string) (*domain.WithdrawalRequest, error) {
	now := s.now()
	expenseID := uuid.NewString()
	decision := domain.WithdrawalDecision{
		Status:      domain.WithdrawalApproved,
		AdminNote:   req.AdminNote,
		ProcessedBy: adminUserID,
		ProcessedAt: now,
		ExpenseID:   &expenseID,
	}
	// Amount and reference are filled in by the repository from the locked row.
	expense := domain.Expense{
		ExpenseID:   expenseID,
		Category:    domain.ExpensePartnerDistribution,
		Description: fmt.Sprintf("Partner wallet withdrawal %s", id),
		ExpenseDate: now,
		Status:      domain.ExpensePaid,
		AuditFields: newAudit(adminUserID, now),
	}

	w, err := s.withdrawalRepo.ApproveWithdrawal(ctx, id, decision, expense)
	if err != nil {
		metrics.WithdrawalDecisionsTotal.WithLabelValues("approve", resultLabel(err)).Inc()
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrConflict) {
			s.LogInfo(ctx, "Withdrawal approval refused", slog.String("withdrawal_id", id), slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to approve withdrawal", slog.String("withdrawal_id", id))
		}
		return nil, err
	}

	metrics.WithdrawalDecisionsTotal.WithLabelValues("approve", "ok").Inc()
	s.track(adminUserID, utils.EventWithdrawalApproved, map[string]any{
		"withdrawal_id": id,
		"partner_id":    w.PartnerID,
		"amount":        w.Amount.StringFixed(2),
	})
	s.LogInfo(ctx, "Withdrawal approved",
		slog.String("withdrawal_id", id),
		slog.String("partner_id", w.PartnerID),
		slog.String("amount", w.Amount.StringFixed(2)))
	s.notify(ctx, *w)
	return w, nil
}

func (s *withdrawalService) RejectWithdrawal(ctx context.Context, id string, req dto.RejectWithdrawalRequest, adminUserID string) (*domain.WithdrawalRequest, error) {
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}
	decision := domain.WithdrawalDecision{
		Status:          domain.WithdrawalRejected,
		AdminNote:       req.AdminNote,
		RejectionReason: req.Reason,
		ProcessedBy:     adminUserID,
		ProcessedAt:     s.now(),
	}

	w, err := s.withdrawalRepo.RejectWithdrawal(ctx, id, decision)
	if err != nil {
		metrics.WithdrawalDecisionsTotal.WithLabelValues("reject", resultLabel(err)).Inc()
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to reject withdrawal", slog.String("withdrawal_id", id))
		}
		return nil, err
	}

	metrics.WithdrawalDecisionsTotal.WithLabelValues("reject", "ok").Inc()
	s.track(adminUserID, utils.EventWithdrawalRejected, map[string]any{"withdrawal_id": id})
	s.LogInfo(ctx, "Withdrawal rejected", slog.String("withdrawal_id", id))
	s.notify(ctx, *w)
	return w, nil
}

// notify runs after commit; a failed e-mail never undoes the decision.
func (s *withdrawalService) notify(ctx context.Context, w domain.WithdrawalRequest) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyWithdrawalDecision(ctx, w); err != nil {
		s.LogError(ctx, err, "Failed to notify partner of withdrawal decision",
			slog.String("withdrawal_id", w.WithdrawalID))
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, apperrors.ErrAlreadyProcessed):
		return "already_processed"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	}
	return "error"
}
