package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/core/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DistributionServiceTestSuite struct {
	suite.Suite
	mockBPRepo           *MockBusinessPartnerRepository
	mockRevenueRepo      *MockRevenueRepository
	mockDistributionRepo *MockDistributionRepository
	mockTracker          *MockTracker
	service              portssvc.DistributionSvcFacade
	start, end           time.Time
	req                  dto.DistributionPeriodRequest
}

func (suite *DistributionServiceTestSuite) SetupTest() {
	suite.mockBPRepo = new(MockBusinessPartnerRepository)
	suite.mockRevenueRepo = new(MockRevenueRepository)
	suite.mockDistributionRepo = new(MockDistributionRepository)
	suite.mockTracker = new(MockTracker)
	suite.mockTracker.On("Enqueue", mock.Anything, mock.Anything, mock.Anything).Maybe()
	suite.service = services.NewDistributionService(suite.mockBPRepo, suite.mockRevenueRepo, suite.mockDistributionRepo, suite.mockTracker)

	suite.start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	suite.req = dto.DistributionPeriodRequest{PeriodStart: "2024-01-01", PeriodEnd: "2024-03-31"}
}

func (suite *DistributionServiceTestSuite) TestCalculate_ShareOfRevenue() {
	ctx := context.Background()
	bp := domain.BusinessPartner{BusinessPartnerID: "bp-1", Name: "Investor A", SharePercentage: decimal.NewFromInt(25), CompanyIDs: []string{}, IsActive: true}

	suite.mockBPRepo.On("ListBusinessPartners", ctx, true).Return([]domain.BusinessPartner{bp}, nil).Once()
	suite.mockRevenueRepo.On("SumRevenue", ctx, suite.start, suite.end, []string{}).Return(decimal.NewFromInt(40000), nil).Once()

	calcs, err := suite.service.CalculateDistributions(ctx, suite.req)

	suite.Require().NoError(err)
	suite.Require().Len(calcs, 1)
	suite.True(calcs[0].TotalRevenue.Equal(decimal.NewFromInt(40000)))
	suite.True(calcs[0].ShareAmount.Equal(decimal.NewFromInt(10000)), calcs[0].ShareAmount.String())
	suite.mockDistributionRepo.AssertNotCalled(suite.T(), "SaveDistributions", mock.Anything, mock.Anything)
}

func (suite *DistributionServiceTestSuite) TestCalculate_OverlappingScopesAreIndependent() {
	ctx := context.Background()
	a := domain.BusinessPartner{BusinessPartnerID: "bp-a", SharePercentage: decimal.NewFromInt(10), CompanyIDs: []string{"c-1"}}
	b := domain.BusinessPartner{BusinessPartnerID: "bp-b", SharePercentage: decimal.RequireFromString("33.33"), CompanyIDs: []string{"c-1", "c-2"}}

	suite.mockBPRepo.On("ListBusinessPartners", ctx, true).Return([]domain.BusinessPartner{a, b}, nil).Once()
	suite.mockRevenueRepo.On("SumRevenue", ctx, suite.start, suite.end, []string{"c-1"}).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRevenueRepo.On("SumRevenue", ctx, suite.start, suite.end, []string{"c-1", "c-2"}).Return(decimal.RequireFromString("1500.50"), nil).Once()

	calcs, err := suite.service.CalculateDistributions(ctx, suite.req)

	suite.Require().NoError(err)
	suite.Require().Len(calcs, 2)
	suite.Equal("100.00", calcs[0].ShareAmount.StringFixed(2))
	// 1500.50 * 33.33 / 100 = 500.11665
	suite.Equal("500.12", calcs[1].ShareAmount.StringFixed(2))
	suite.mockRevenueRepo.AssertExpectations(suite.T())
}

func (suite *DistributionServiceTestSuite) TestCalculate_EndBeforeStart() {
	_, err := suite.service.CalculateDistributions(context.Background(), dto.DistributionPeriodRequest{PeriodStart: "2024-03-01", PeriodEnd: "2024-02-01"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBPRepo.AssertNotCalled(suite.T(), "ListBusinessPartners", mock.Anything, mock.Anything)
}

func (suite *DistributionServiceTestSuite) TestCalculate_UnknownSelectedPartner() {
	ctx := context.Background()
	req := suite.req
	req.BusinessPartnerID = "missing"
	suite.mockBPRepo.On("FindBusinessPartnerByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CalculateDistributions(ctx, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DistributionServiceTestSuite) TestCreate_PersistsPendingRowsTogether() {
	ctx := context.Background()
	bp := domain.BusinessPartner{BusinessPartnerID: "bp-1", Name: "Investor A", SharePercentage: decimal.NewFromInt(25), CompanyIDs: []string{}}

	suite.mockBPRepo.On("ListBusinessPartners", ctx, true).Return([]domain.BusinessPartner{bp}, nil).Once()
	suite.mockRevenueRepo.On("SumRevenue", ctx, suite.start, suite.end, []string{}).Return(decimal.NewFromInt(40000), nil).Once()
	suite.mockDistributionRepo.On("SaveDistributions", ctx, mock.MatchedBy(func(ds []domain.Distribution) bool {
		return len(ds) == 1 && ds[0].Status == domain.DistributionPending && ds[0].ShareAmount.Equal(decimal.NewFromInt(10000))
	})).Return(nil).Once()

	rows, err := suite.service.CreateDistributions(ctx, suite.req, "admin")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("admin", rows[0].CreatedBy)
	suite.mockDistributionRepo.AssertExpectations(suite.T())
}

func (suite *DistributionServiceTestSuite) TestCreate_DuplicatePeriod() {
	ctx := context.Background()
	bp := domain.BusinessPartner{BusinessPartnerID: "bp-1", SharePercentage: decimal.NewFromInt(5), CompanyIDs: []string{}}

	suite.mockBPRepo.On("ListBusinessPartners", ctx, true).Return([]domain.BusinessPartner{bp}, nil).Once()
	suite.mockRevenueRepo.On("SumRevenue", ctx, suite.start, suite.end, []string{}).Return(decimal.Zero, nil).Once()
	suite.mockDistributionRepo.On("SaveDistributions", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateDistributions(ctx, suite.req, "admin")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *DistributionServiceTestSuite) TestCreate_NoActivePartners() {
	ctx := context.Background()
	suite.mockBPRepo.On("ListBusinessPartners", ctx, true).Return([]domain.BusinessPartner{}, nil).Once()

	_, err := suite.service.CreateDistributions(ctx, suite.req, "admin")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DistributionServiceTestSuite) TestUpdateStatus_CompletedRecordsExpense() {
	ctx := context.Background()
	d := &domain.Distribution{
		DistributionID: "d-1", PartnerName: "Investor A", Status: domain.DistributionPending,
		ShareAmount: decimal.NewFromInt(10000), PeriodStart: suite.start, PeriodEnd: suite.end,
	}
	done := *d
	done.Status = domain.DistributionCompleted

	suite.mockDistributionRepo.On("FindDistributionByID", ctx, "d-1").Return(d, nil).Once()
	suite.mockDistributionRepo.On("UpdateDistributionStatus", ctx, "d-1", domain.DistributionCompleted, "paid by transfer",
		mock.MatchedBy(func(e *domain.Expense) bool {
			return e != nil && e.Category == domain.ExpensePartnerDistribution &&
				e.Amount.Equal(decimal.NewFromInt(10000)) && e.ReferenceID != nil && *e.ReferenceID == "d-1"
		}), "admin", mock.Anything).Return(&done, nil).Once()

	got, err := suite.service.UpdateDistributionStatus(ctx, "d-1", dto.UpdateDistributionStatusRequest{Status: "COMPLETED", Notes: "paid by transfer"}, "admin")

	suite.Require().NoError(err)
	suite.Equal(domain.DistributionCompleted, got.Status)
	suite.mockDistributionRepo.AssertExpectations(suite.T())
}

func (suite *DistributionServiceTestSuite) TestUpdateStatus_CancelledHasNoExpense() {
	ctx := context.Background()
	d := &domain.Distribution{DistributionID: "d-2", Status: domain.DistributionPending, ShareAmount: decimal.NewFromInt(10)}
	cancelled := *d
	cancelled.Status = domain.DistributionCancelled

	suite.mockDistributionRepo.On("FindDistributionByID", ctx, "d-2").Return(d, nil).Once()
	suite.mockDistributionRepo.On("UpdateDistributionStatus", ctx, "d-2", domain.DistributionCancelled, "",
		(*domain.Expense)(nil), "admin", mock.Anything).Return(&cancelled, nil).Once()

	_, err := suite.service.UpdateDistributionStatus(ctx, "d-2", dto.UpdateDistributionStatusRequest{Status: "CANCELLED"}, "admin")

	suite.Require().NoError(err)
	suite.mockDistributionRepo.AssertExpectations(suite.T())
}

func (suite *DistributionServiceTestSuite) TestUpdateStatus_TerminalIsConflict() {
	ctx := context.Background()
	d := &domain.Distribution{DistributionID: "d-3", Status: domain.DistributionCompleted}
	suite.mockDistributionRepo.On("FindDistributionByID", ctx, "d-3").Return(d, nil).Once()

	_, err := suite.service.UpdateDistributionStatus(ctx, "d-3", dto.UpdateDistributionStatusRequest{Status: "CANCELLED"}, "admin")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DistributionServiceTestSuite) TestUpdateStatus_RejectsPending() {
	_, err := suite.service.UpdateDistributionStatus(context.Background(), "d-4", dto.UpdateDistributionStatusRequest{Status: "PENDING"}, "admin")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestDistributionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DistributionServiceTestSuite))
}
