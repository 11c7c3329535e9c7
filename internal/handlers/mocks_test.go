package handlers_test

import (
	"context"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.LoginResponse)
	return resp, args.Error(1)
}

type MockPartnerService struct{ mock.Mock }

func (m *MockPartnerService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error) {
	args := m.Called(ctx, req, userID)
	p, _ := args.Get(0).(*domain.Partner)
	return p, args.Error(1)
}

func (m *MockPartnerService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	p, _ := args.Get(0).(*domain.Partner)
	return p, args.Error(1)
}

func (m *MockPartnerService) ListPartners(ctx context.Context, params dto.ListPartnersParams) ([]domain.Partner, error) {
	args := m.Called(ctx, params)
	ps, _ := args.Get(0).([]domain.Partner)
	return ps, args.Error(1)
}

func (m *MockPartnerService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID, req, userID)
	p, _ := args.Get(0).(*domain.Partner)
	return p, args.Error(1)
}

func (m *MockPartnerService) DeactivatePartner(ctx context.Context, partnerID string, userID string) error {
	return m.Called(ctx, partnerID, userID).Error(0)
}

func (m *MockPartnerService) CreditWallet(ctx context.Context, partnerID string, req dto.CreditWalletRequest, userID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

type MockWithdrawalService struct{ mock.Mock }

func (m *MockWithdrawalService) CreateWithdrawal(ctx context.Context, partnerID string, req dto.CreateWithdrawalRequest, userID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, partnerID, req, userID)
	w, _ := args.Get(0).(*domain.WithdrawalRequest)
	return w, args.Error(1)
}

func (m *MockWithdrawalService) GetWithdrawalByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*domain.WithdrawalRequest)
	return w, args.Error(1)
}

func (m *MockWithdrawalService) ListWithdrawals(ctx context.Context, params dto.ListWithdrawalsParams) ([]domain.WithdrawalRequest, error) {
	args := m.Called(ctx, params)
	ws, _ := args.Get(0).([]domain.WithdrawalRequest)
	return ws, args.Error(1)
}

func (m *MockWithdrawalService) ApproveWithdrawal(ctx context.Context, id string, req dto.ApproveWithdrawalRequest, adminUserID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id, req, adminUserID)
	w, _ := args.Get(0).(*domain.WithdrawalRequest)
	return w, args.Error(1)
}

func (m *MockWithdrawalService) RejectWithdrawal(ctx context.Context, id string, req dto.RejectWithdrawalRequest, adminUserID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id, req, adminUserID)
	w, _ := args.Get(0).(*domain.WithdrawalRequest)
	return w, args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error) {
	args := m.Called(ctx, req, userID)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, *string, error) {
	args := m.Called(ctx, params)
	os, _ := args.Get(0).([]domain.Order)
	next, _ := args.Get(1).(*string)
	return os, next, args.Error(2)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest, userID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, req, userID)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) MarkOrderPaid(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, userID)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

type MockInvoiceService struct{ mock.Mock }

func (m *MockInvoiceService) GenerateInvoice(ctx context.Context, orderID string, branded bool, userID string) (string, []byte, error) {
	args := m.Called(ctx, orderID, branded, userID)
	pdf, _ := args.Get(1).([]byte)
	return args.String(0), pdf, args.Error(2)
}

type MockPriceUpdateService struct{ mock.Mock }

func (m *MockPriceUpdateService) PreviewPriceUpdate(ctx context.Context, params dto.PriceUpdatePreviewParams) (*dto.PriceUpdatePreviewResponse, error) {
	args := m.Called(ctx, params)
	r, _ := args.Get(0).(*dto.PriceUpdatePreviewResponse)
	return r, args.Error(1)
}

func (m *MockPriceUpdateService) ApplyPriceUpdate(ctx context.Context, req dto.PriceUpdateRequest, userID string) (*domain.PriceUpdateBatch, error) {
	args := m.Called(ctx, req, userID)
	b, _ := args.Get(0).(*domain.PriceUpdateBatch)
	return b, args.Error(1)
}

func (m *MockPriceUpdateService) GetPriceUpdate(ctx context.Context, batchID string) (*domain.PriceUpdateBatch, error) {
	args := m.Called(ctx, batchID)
	b, _ := args.Get(0).(*domain.PriceUpdateBatch)
	return b, args.Error(1)
}

func (m *MockPriceUpdateService) ListPriceUpdates(ctx context.Context, limit int, offset int) ([]domain.PriceUpdateBatch, error) {
	args := m.Called(ctx, limit, offset)
	bs, _ := args.Get(0).([]domain.PriceUpdateBatch)
	return bs, args.Error(1)
}

func (m *MockPriceUpdateService) RevertPriceUpdate(ctx context.Context, batchID string, userID string) (*domain.PriceUpdateBatch, error) {
	args := m.Called(ctx, batchID, userID)
	b, _ := args.Get(0).(*domain.PriceUpdateBatch)
	return b, args.Error(1)
}

type MockExpenseService struct{ mock.Mock }

func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	args := m.Called(ctx, req, userID)
	e, _ := args.Get(0).(*domain.Expense)
	return e, args.Error(1)
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, id string) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Expense)
	return e, args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	args := m.Called(ctx, params)
	es, _ := args.Get(0).([]domain.Expense)
	return es, args.Error(1)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, id string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	args := m.Called(ctx, id, req, userID)
	e, _ := args.Get(0).(*domain.Expense)
	return e, args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExpenseService) SummarizeExpenses(ctx context.Context, year int, month int) ([]domain.ExpenseCategoryTotal, error) {
	args := m.Called(ctx, year, month)
	rows, _ := args.Get(0).([]domain.ExpenseCategoryTotal)
	return rows, args.Error(1)
}
