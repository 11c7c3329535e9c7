package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/core/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WithdrawalServiceTestSuite struct {
	suite.Suite
	mockWithdrawalRepo *MockWithdrawalRepository
	mockPartnerRepo    *MockPartnerRepository
	mockNotifier       *MockNotifier
	mockTracker        *MockTracker
	service            portssvc.WithdrawalSvcFacade
	partner            domain.Partner
	adminID            string
}

func (suite *WithdrawalServiceTestSuite) SetupTest() {
	suite.mockWithdrawalRepo = new(MockWithdrawalRepository)
	suite.mockPartnerRepo = new(MockPartnerRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.mockTracker = new(MockTracker)
	suite.service = services.NewWithdrawalService(suite.mockWithdrawalRepo, suite.mockPartnerRepo, suite.mockNotifier, suite.mockTracker)

	suite.adminID = uuid.NewString()
	suite.partner = domain.Partner{
		PartnerID:     uuid.NewString(),
		Name:          "Happy Paws Clinic",
		Email:         "clinic@example.com",
		WalletBalance: decimal.NewFromInt(500),
		IsActive:      true,
	}
}

func (suite *WithdrawalServiceTestSuite) approved(amount int64) *domain.WithdrawalRequest {
	return &domain.WithdrawalRequest{
		WithdrawalID: uuid.NewString(),
		PartnerID:    suite.partner.PartnerID,
		PartnerEmail: suite.partner.Email,
		Amount:       decimal.NewFromInt(amount),
		Status:       domain.WithdrawalApproved,
	}
}

func (suite *WithdrawalServiceTestSuite) TestCreateWithdrawal_Success() {
	ctx := context.Background()
	amount := decimal.RequireFromString("200.005")
	req := dto.CreateWithdrawalRequest{Amount: &amount, PartnerNote: "monthly payout"}

	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partner.PartnerID).Return(&suite.partner, nil).Once()
	suite.mockWithdrawalRepo.On("SaveWithdrawal", ctx, mock.MatchedBy(func(w domain.WithdrawalRequest) bool {
		return w.Status == domain.WithdrawalPending && w.Amount.Equal(decimal.RequireFromString("200.01"))
	})).Return(nil).Once()

	w, err := suite.service.CreateWithdrawal(ctx, suite.partner.PartnerID, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalPending, w.Status)
	suite.Equal("monthly payout", w.PartnerNote)
	suite.Equal("user-1", w.CreatedBy)
	suite.mockWithdrawalRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestCreateWithdrawal_ExceedsBalance() {
	ctx := context.Background()
	amount := decimal.NewFromInt(501)

	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partner.PartnerID).Return(&suite.partner, nil).Once()

	_, err := suite.service.CreateWithdrawal(ctx, suite.partner.PartnerID, dto.CreateWithdrawalRequest{Amount: &amount}, "user-1")

	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockWithdrawalRepo.AssertNotCalled(suite.T(), "SaveWithdrawal", mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestCreateWithdrawal_NonPositiveAmount() {
	for _, raw := range []string{"0", "-10", "0.001"} {
		amount := decimal.RequireFromString(raw)
		_, err := suite.service.CreateWithdrawal(context.Background(), suite.partner.PartnerID, dto.CreateWithdrawalRequest{Amount: &amount}, "user-1")
		suite.ErrorIs(err, apperrors.ErrValidation, raw)
	}
	suite.mockPartnerRepo.AssertNotCalled(suite.T(), "FindPartnerByID", mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestCreateWithdrawal_InactivePartner() {
	ctx := context.Background()
	amount := decimal.NewFromInt(10)
	suite.partner.IsActive = false
	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partner.PartnerID).Return(&suite.partner, nil).Once()

	_, err := suite.service.CreateWithdrawal(ctx, suite.partner.PartnerID, dto.CreateWithdrawalRequest{Amount: &amount}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WithdrawalServiceTestSuite) TestApproveWithdrawal_Success() {
	ctx := context.Background()
	w := suite.approved(200)

	suite.mockWithdrawalRepo.On("ApproveWithdrawal", ctx, w.WithdrawalID,
		mock.MatchedBy(func(d domain.WithdrawalDecision) bool {
			return d.Status == domain.WithdrawalApproved && d.ProcessedBy == suite.adminID && d.AdminNote == "ok" && d.ExpenseID != nil
		}),
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.Category == domain.ExpensePartnerDistribution && e.Status == domain.ExpensePaid && e.CreatedBy == suite.adminID
		}),
	).Return(w, nil).Once()
	suite.mockTracker.On("Enqueue", suite.adminID, utils.EventWithdrawalApproved, mock.Anything).Once()
	suite.mockNotifier.On("NotifyWithdrawalDecision", ctx, *w).Return(nil).Once()

	got, err := suite.service.ApproveWithdrawal(ctx, w.WithdrawalID, dto.ApproveWithdrawalRequest{AdminNote: "ok"}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalApproved, got.Status)
	suite.mockWithdrawalRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockTracker.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestApproveWithdrawal_NotificationFailureDoesNotFail() {
	ctx := context.Background()
	w := suite.approved(50)

	suite.mockWithdrawalRepo.On("ApproveWithdrawal", ctx, w.WithdrawalID, mock.Anything, mock.Anything).Return(w, nil).Once()
	suite.mockTracker.On("Enqueue", mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.On("NotifyWithdrawalDecision", ctx, *w).Return(errors.New("smtp down")).Once()

	got, err := suite.service.ApproveWithdrawal(ctx, w.WithdrawalID, dto.ApproveWithdrawalRequest{}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(w.WithdrawalID, got.WithdrawalID)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestApproveWithdrawal_AlreadyProcessed() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockWithdrawalRepo.On("ApproveWithdrawal", ctx, id, mock.Anything, mock.Anything).Return(nil, apperrors.ErrAlreadyProcessed).Once()

	_, err := suite.service.ApproveWithdrawal(ctx, id, dto.ApproveWithdrawalRequest{}, suite.adminID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyWithdrawalDecision", mock.Anything, mock.Anything)
	suite.mockTracker.AssertNotCalled(suite.T(), "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestApproveWithdrawal_InsufficientBalance() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockWithdrawalRepo.On("ApproveWithdrawal", ctx, id, mock.Anything, mock.Anything).Return(nil, apperrors.ErrInsufficientBalance).Once()

	_, err := suite.service.ApproveWithdrawal(ctx, id, dto.ApproveWithdrawalRequest{}, suite.adminID)

	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyWithdrawalDecision", mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestRejectWithdrawal_Success() {
	ctx := context.Background()
	w := suite.approved(75)
	w.Status = domain.WithdrawalRejected
	w.RejectionReason = "missing invoice"

	suite.mockWithdrawalRepo.On("RejectWithdrawal", ctx, w.WithdrawalID, mock.MatchedBy(func(d domain.WithdrawalDecision) bool {
		return d.Status == domain.WithdrawalRejected && d.RejectionReason == "missing invoice" && d.ExpenseID == nil
	})).Return(w, nil).Once()
	suite.mockTracker.On("Enqueue", suite.adminID, utils.EventWithdrawalRejected, mock.Anything).Once()
	suite.mockNotifier.On("NotifyWithdrawalDecision", ctx, *w).Return(nil).Once()

	got, err := suite.service.RejectWithdrawal(ctx, w.WithdrawalID, dto.RejectWithdrawalRequest{Reason: "missing invoice"}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalRejected, got.Status)
	suite.mockWithdrawalRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestRejectWithdrawal_RequiresReason() {
	_, err := suite.service.RejectWithdrawal(context.Background(), uuid.NewString(), dto.RejectWithdrawalRequest{}, suite.adminID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWithdrawalRepo.AssertNotCalled(suite.T(), "RejectWithdrawal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestListWithdrawals_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockWithdrawalRepo.On("ListWithdrawals", ctx, domain.WithdrawalFilter{Status: domain.WithdrawalPending, Limit: 50}).
		Return(nil, nil).Once()

	ws, err := suite.service.ListWithdrawals(ctx, dto.ListWithdrawalsParams{Status: "pending", Limit: 50})

	suite.Require().NoError(err)
	suite.NotNil(ws)
	suite.Empty(ws)
}

func TestWithdrawalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalServiceTestSuite))
}
