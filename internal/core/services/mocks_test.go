package services_test

import (
	"context"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PartnerRepository ---
type MockPartnerRepository struct {
	mock.Mock
}

var _ portsrepo.PartnerRepositoryFacade = (*MockPartnerRepository)(nil)

func (m *MockPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) ListPartners(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Partner, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *MockPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *MockPartnerRepository) DeactivatePartner(ctx context.Context, partnerID string, userID string, now time.Time) error {
	return m.Called(ctx, partnerID, userID, now).Error(0)
}

func (m *MockPartnerRepository) CreditWallet(ctx context.Context, credit domain.WalletCredit) (*domain.Partner, error) {
	args := m.Called(ctx, credit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

// --- Mock WithdrawalRepository ---
type MockWithdrawalRepository struct {
	mock.Mock
}

var _ portsrepo.WithdrawalRepositoryFacade = (*MockWithdrawalRepository)(nil)

func (m *MockWithdrawalRepository) FindWithdrawalByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.WithdrawalRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) SaveWithdrawal(ctx context.Context, w domain.WithdrawalRequest) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWithdrawalRepository) ApproveWithdrawal(ctx context.Context, id string, decision domain.WithdrawalDecision, expense domain.Expense) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id, decision, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) RejectWithdrawal(ctx context.Context, id string, decision domain.WithdrawalDecision) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, id string) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExpenseRepository) SummarizeExpenses(ctx context.Context, from, to time.Time) ([]domain.ExpenseCategoryTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseCategoryTotal), args.Error(1)
}

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Order), next, args.Error(2)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, userID string, now time.Time) error {
	return m.Called(ctx, orderID, from, to, userID, now).Error(0)
}

func (m *MockOrderRepository) MarkOrderPaid(ctx context.Context, orderID string, revenue []domain.RevenueTransaction, userID string, now time.Time) error {
	return m.Called(ctx, orderID, revenue, userID, now).Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariantsByIDs(ctx context.Context, variantIDs []string) (map[string]domain.ProductVariant, map[string]domain.Product, error) {
	args := m.Called(ctx, variantIDs)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(map[string]domain.ProductVariant), args.Get(1).(map[string]domain.Product), args.Error(2)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	return m.Called(ctx, productID, userID, now).Error(0)
}

// --- Mock BusinessPartnerRepository ---
type MockBusinessPartnerRepository struct {
	mock.Mock
}

var _ portsrepo.BusinessPartnerRepositoryFacade = (*MockBusinessPartnerRepository)(nil)

func (m *MockBusinessPartnerRepository) SaveBusinessPartner(ctx context.Context, bp domain.BusinessPartner) error {
	return m.Called(ctx, bp).Error(0)
}

func (m *MockBusinessPartnerRepository) UpdateBusinessPartner(ctx context.Context, bp domain.BusinessPartner) error {
	return m.Called(ctx, bp).Error(0)
}

func (m *MockBusinessPartnerRepository) FindBusinessPartnerByID(ctx context.Context, id string) (*domain.BusinessPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessPartner), args.Error(1)
}

func (m *MockBusinessPartnerRepository) ListBusinessPartners(ctx context.Context, activeOnly bool) ([]domain.BusinessPartner, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessPartner), args.Error(1)
}

func (m *MockBusinessPartnerRepository) DeactivateBusinessPartner(ctx context.Context, id string, userID string, now time.Time) error {
	return m.Called(ctx, id, userID, now).Error(0)
}

// --- Mock RevenueRepository ---
type MockRevenueRepository struct {
	mock.Mock
}

var _ portsrepo.RevenueRepositoryFacade = (*MockRevenueRepository)(nil)

func (m *MockRevenueRepository) SaveRevenue(ctx context.Context, rev domain.RevenueTransaction) error {
	return m.Called(ctx, rev).Error(0)
}

func (m *MockRevenueRepository) ListRevenue(ctx context.Context, filter domain.RevenueFilter) ([]domain.RevenueTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueTransaction), args.Error(1)
}

func (m *MockRevenueRepository) SumRevenue(ctx context.Context, from, to time.Time, companyIDs []string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, companyIDs)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock DistributionRepository ---
type MockDistributionRepository struct {
	mock.Mock
}

var _ portsrepo.DistributionRepositoryFacade = (*MockDistributionRepository)(nil)

func (m *MockDistributionRepository) FindDistributionByID(ctx context.Context, id string) (*domain.Distribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}

func (m *MockDistributionRepository) ListDistributions(ctx context.Context, filter domain.DistributionFilter) ([]domain.Distribution, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Distribution), args.Error(1)
}

func (m *MockDistributionRepository) SaveDistributions(ctx context.Context, distributions []domain.Distribution) error {
	return m.Called(ctx, distributions).Error(0)
}

func (m *MockDistributionRepository) UpdateDistributionStatus(ctx context.Context, id string, next domain.DistributionStatus, notes string, expense *domain.Expense, userID string, now time.Time) (*domain.Distribution, error) {
	args := m.Called(ctx, id, next, notes, expense, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}

// --- Mock PriceUpdateRepository ---
type MockPriceUpdateRepository struct {
	mock.Mock
}

var _ portsrepo.PriceUpdateRepositoryFacade = (*MockPriceUpdateRepository)(nil)

func (m *MockPriceUpdateRepository) ResolveScope(ctx context.Context, scope domain.PriceScope) ([]domain.ProductVariant, map[string]string, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.ProductVariant), args.Get(1).(map[string]string), args.Error(2)
}

func (m *MockPriceUpdateRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.PriceUpdateBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceUpdateBatch), args.Error(1)
}

func (m *MockPriceUpdateRepository) ListBatches(ctx context.Context, limit int, offset int) ([]domain.PriceUpdateBatch, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceUpdateBatch), args.Error(1)
}

func (m *MockPriceUpdateRepository) ApplyPriceUpdate(ctx context.Context, batch domain.PriceUpdateBatch) (*domain.PriceUpdateBatch, error) {
	args := m.Called(ctx, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceUpdateBatch), args.Error(1)
}

func (m *MockPriceUpdateRepository) RevertBatch(ctx context.Context, batchID string, userID string, now time.Time) (*domain.PriceUpdateBatch, error) {
	args := m.Called(ctx, batchID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceUpdateBatch), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- Adapter mocks ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyWithdrawalDecision(ctx context.Context, w domain.WithdrawalRequest) error {
	return m.Called(ctx, w).Error(0)
}

type MockRenderer struct {
	mock.Mock
}

var _ portssvc.InvoiceRenderer = (*MockRenderer)(nil)

func (m *MockRenderer) Render(order domain.Order, branded bool) ([]byte, error) {
	args := m.Called(order, branded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}
