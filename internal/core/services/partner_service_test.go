package services_test

import (
	"context"
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

type PartnerServiceTestSuite struct {
	suite.Suite
	mockPartnerRepo *MockPartnerRepository
	service         portssvc.PartnerSvcFacade
	partner         domain.Partner
	adminID         string
}

func (suite *PartnerServiceTestSuite) SetupTest() {
	suite.mockPartnerRepo = new(MockPartnerRepository)
	suite.service = services.NewPartnerService(suite.mockPartnerRepo)
	suite.adminID = uuid.NewString()
	suite.partner = domain.Partner{
		PartnerID:     uuid.NewString(),
		Name:          "Happy Paws Clinic",
		Email:         "clinic@example.com",
		WalletBalance: decimal.Zero,
		IsActive:      true,
	}
}

func (suite *PartnerServiceTestSuite) TestCreditWallet_Success() {
	ctx := context.Background()
	amount := decimal.RequireFromString("120.505")
	credited := suite.partner
	credited.WalletBalance = decimal.RequireFromString("120.51")

	suite.mockPartnerRepo.On("CreditWallet", ctx, mock.MatchedBy(func(c domain.WalletCredit) bool {
		return c.PartnerID == suite.partner.PartnerID &&
			c.Amount.Equal(decimal.RequireFromString("120.51")) &&
			c.Note == "march commission" &&
			c.CreatedBy == suite.adminID &&
			c.CreditID != ""
	})).Return(&credited, nil).Once()

	got, err := suite.service.CreditWallet(ctx, suite.partner.PartnerID,
		dto.CreditWalletRequest{Amount: &amount, Note: "  march commission "}, suite.adminID)

	suite.Require().NoError(err)
	suite.True(got.WalletBalance.Equal(decimal.RequireFromString("120.51")))
	suite.mockPartnerRepo.AssertExpectations(suite.T())
}

func (suite *PartnerServiceTestSuite) TestCreditWallet_NonPositiveAmount() {
	for _, raw := range []string{"0", "-5", "0.004"} {
		amount := decimal.RequireFromString(raw)
		_, err := suite.service.CreditWallet(context.Background(), suite.partner.PartnerID,
			dto.CreditWalletRequest{Amount: &amount}, suite.adminID)
		suite.ErrorIs(err, apperrors.ErrValidation, raw)
	}
	_, err := suite.service.CreditWallet(context.Background(), suite.partner.PartnerID, dto.CreditWalletRequest{}, suite.adminID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPartnerRepo.AssertNotCalled(suite.T(), "CreditWallet", mock.Anything, mock.Anything)
}

func (suite *PartnerServiceTestSuite) TestCreditWallet_InactivePartner() {
	ctx := context.Background()
	amount := decimal.NewFromInt(10)
	suite.mockPartnerRepo.On("CreditWallet", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreditWallet(ctx, suite.partner.PartnerID, dto.CreditWalletRequest{Amount: &amount}, suite.adminID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// A fresh partner can only be paid out after its wallet is credited.
func (suite *PartnerServiceTestSuite) TestCreditThenWithdrawAndApprove() {
	ctx := context.Background()
	withdrawalRepo := new(MockWithdrawalRepository)
	notifier := new(MockNotifier)
	tracker := new(MockTracker)
	withdrawals := services.NewWithdrawalService(withdrawalRepo, suite.mockPartnerRepo, notifier, tracker)

	amount := decimal.NewFromInt(300)
	payout := decimal.NewFromInt(200)

	// Before any credit the request is refused.
	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partner.PartnerID).Return(&suite.partner, nil).Once()
	_, err := withdrawals.CreateWithdrawal(ctx, suite.partner.PartnerID, dto.CreateWithdrawalRequest{Amount: &payout}, suite.adminID)
	suite.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)

	credited := suite.partner
	credited.WalletBalance = amount
	suite.mockPartnerRepo.On("CreditWallet", ctx, mock.Anything).Return(&credited, nil).Once()
	got, err := suite.service.CreditWallet(ctx, suite.partner.PartnerID, dto.CreditWalletRequest{Amount: &amount}, suite.adminID)
	suite.Require().NoError(err)
	suite.True(got.WalletBalance.Equal(amount))

	suite.mockPartnerRepo.On("FindPartnerByID", ctx, suite.partner.PartnerID).Return(&credited, nil).Once()
	withdrawalRepo.On("SaveWithdrawal", ctx, mock.Anything).Return(nil).Once()
	w, err := withdrawals.CreateWithdrawal(ctx, suite.partner.PartnerID, dto.CreateWithdrawalRequest{Amount: &payout}, suite.adminID)
	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalPending, w.Status)

	approved := *w
	approved.Status = domain.WithdrawalApproved
	withdrawalRepo.On("ApproveWithdrawal", ctx, w.WithdrawalID, mock.Anything, mock.Anything).Return(&approved, nil).Once()
	tracker.On("Enqueue", suite.adminID, utils.EventWithdrawalApproved, mock.Anything).Once()
	notifier.On("NotifyWithdrawalDecision", ctx, approved).Return(nil).Once()

	done, err := withdrawals.ApproveWithdrawal(ctx, w.WithdrawalID, dto.ApproveWithdrawalRequest{}, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalApproved, done.Status)
	suite.mockPartnerRepo.AssertExpectations(suite.T())
	withdrawalRepo.AssertExpectations(suite.T())
}

func TestPartnerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerServiceTestSuite))
}
