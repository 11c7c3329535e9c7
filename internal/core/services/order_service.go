package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/platform/metrics"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/animal-wellness/aw_backend/internal/utils/accounting"
	"github.com/animal-wellness/aw_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

type orderService struct {
	BaseService
	orderRepo   portsrepo.OrderRepositoryFacade
	productRepo portsrepo.ProductReader
	partnerRepo portsrepo.PartnerReader
}

func NewOrderService(
	orderRepo portsrepo.OrderRepositoryFacade,
	productRepo portsrepo.ProductReader,
	partnerRepo portsrepo.PartnerReader,
	tracker utils.EventTracker,
) portssvc.OrderSvcFacade {
	return &orderService{
		BaseService: BaseService{Tracker: tracker},
		orderRepo:   orderRepo,
		productRepo: productRepo,
		partnerRepo: partnerRepo,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func optionalMoney(field string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s cannot be negative", apperrors.ErrValidation, field)
	}
	return utils.RoundMoney(*v), nil
}

// CreateOrder snapshots catalog prices into the order lines. Partner orders are billed at
// dealer price, everyone else at customer price. Stock is reserved by the repository.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one item", apperrors.ErrValidation)
	}
	discount, err := optionalMoney("discount", req.Discount)
	if err != nil {
		return nil, err
	}
	shipping, err := optionalMoney("shippingCost", req.ShippingCost)
	if err != nil {
		return nil, err
	}

	priceType := domain.CustomerPrice
	if req.PartnerID != nil && *req.PartnerID != "" {
		partner, err := s.partnerRepo.FindPartnerByID(ctx, *req.PartnerID)
		if err != nil {
			return nil, err
		}
		if !partner.IsActive {
			return nil, fmt.Errorf("%w: partner %s is inactive", apperrors.ErrValidation, partner.PartnerID)
		}
		priceType = domain.DealerPrice
	} else {
		req.PartnerID = nil
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity for variant %s must be at least 1", apperrors.ErrValidation, it.VariantID)
		}
		ids = append(ids, it.VariantID)
	}
	variants, products, err := s.productRepo.FindVariantsByIDs(ctx, ids)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load order variants")
		}
		return nil, err
	}

	now := s.now()
	orderID := uuid.NewString()
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		v, ok := variants[it.VariantID]
		if !ok {
			return nil, fmt.Errorf("%w: variant %s", apperrors.ErrNotFound, it.VariantID)
		}
		p := products[v.ProductID]
		if !p.IsActive {
			return nil, fmt.Errorf("%w: product %s is not for sale", apperrors.ErrValidation, p.Name)
		}
		unit := v.Price(priceType)
		items = append(items, domain.OrderItem{
			OrderItemID:   uuid.NewString(),
			OrderID:       orderID,
			ProductID:     p.ProductID,
			VariantID:     v.VariantID,
			CompanyID:     p.CompanyID,
			ProductName:   p.Name,
			PackingVolume: v.PackingVolume,
			Quantity:      it.Quantity,
			UnitPrice:     unit,
			LineTotal:     accounting.LineTotal(unit, it.Quantity),
		})
	}

	number, err := utils.GenerateOrderNumber(now)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate order number")
		return nil, err
	}
	totals := accounting.CalculateOrderTotals(items, discount, shipping)
	order := domain.Order{
		OrderID:         orderID,
		OrderNumber:     number,
		PartnerID:       req.PartnerID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Status:          domain.OrderPending,
		PaymentStatus:   domain.PaymentUnpaid,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		ShippingCost:    totals.Shipping,
		Total:           totals.Total,
		Notes:           req.Notes,
		OrderDate:       now,
		Items:           items,
		AuditFields:     newAudit(userID, now),
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Order refused", slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to save order", slog.String("order_number", number))
		}
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	s.track(userID, utils.EventOrderPlaced, map[string]any{
		"order_id": orderID,
		"total":    order.Total.StringFixed(2),
		"items":    len(items),
		"partner":  req.PartnerID != nil,
	})
	s.LogInfo(ctx, "Order placed",
		slog.String("order_id", orderID),
		slog.String("order_number", number),
		slog.String("total", order.Total.StringFixed(2)))
	return &order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get order", slog.String("order_id", orderID))
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, *string, error) {
	filter := domain.OrderFilter{
		PartnerID: params.PartnerID,
		Status:    domain.OrderStatus(params.Status),
		Limit:     pagination.Page(params.Limit, defaultOrderPageSize, maxOrderPageSize),
	}
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.AfterCreatedAt = &createdAt
		filter.AfterID = id
	}

	orders, next, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders")
		return nil, nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, next, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest, userID string) (*domain.Order, error) {
	next := domain.OrderStatus(req.Status)
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: order cannot move from %s to %s", apperrors.ErrConflict, order.Status, next)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, order.Status, next, userID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update order status", slog.String("order_id", orderID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(next)))
	return s.GetOrderByID(ctx, orderID)
}

// MarkOrderPaid books one revenue transaction per company on the order, worth the
// sum of that company's lines. Shipping and discount are not attributed.
func (s *orderService) MarkOrderPaid(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %s is cancelled", apperrors.ErrConflict, orderID)
	}
	if order.PaymentStatus == domain.PaymentPaid {
		return nil, fmt.Errorf("%w: order %s is already paid", apperrors.ErrConflict, orderID)
	}

	now := s.now()
	revenue := revenueForOrder(*order, userID, now)
	if err := s.orderRepo.MarkOrderPaid(ctx, orderID, revenue, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to mark order paid", slog.String("order_id", orderID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Order paid", slog.String("order_id", orderID), slog.Int("revenue_rows", len(revenue)))
	return s.GetOrderByID(ctx, orderID)
}

func revenueForOrder(order domain.Order, userID string, now time.Time) []domain.RevenueTransaction {
	byCompany := map[string]decimal.Decimal{}
	for _, it := range order.Items {
		line := it.LineTotal
		if line.IsZero() {
			line = accounting.LineTotal(it.UnitPrice, it.Quantity)
		}
		byCompany[it.CompanyID] = byCompany[it.CompanyID].Add(line)
	}
	companies := make([]string, 0, len(byCompany))
	for c := range byCompany {
		companies = append(companies, c)
	}
	sort.Strings(companies)

	orderID := order.OrderID
	revenue := make([]domain.RevenueTransaction, 0, len(companies))
	for _, c := range companies {
		amount := utils.RoundMoney(byCompany[c])
		if !amount.IsPositive() {
			continue
		}
		companyID := c
		revenue = append(revenue, domain.RevenueTransaction{
			RevenueID:       uuid.NewString(),
			Amount:          amount,
			TransactionDate: now,
			CompanyID:       &companyID,
			OrderID:         &orderID,
			Description:     fmt.Sprintf("Order %s", order.OrderNumber),
			AuditFields:     newAudit(userID, now),
		})
	}
	return revenue
}
