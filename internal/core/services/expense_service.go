package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func expenseAmount(amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount == nil || !utils.RoundMoney(*amount).IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return utils.RoundMoney(*amount), nil
}

func parseExpenseCategory(value string) (domain.ExpenseCategory, error) {
	c := domain.ExpenseCategory(value)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, value)
	}
	return c, nil
}

func parseExpenseStatus(value string) (domain.ExpenseStatus, error) {
	st := domain.ExpenseStatus(value)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: unknown expense status %q", apperrors.ErrValidation, value)
	}
	return st, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	category, err := parseExpenseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	amount, err := expenseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("expenseDate", req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	status := domain.ExpensePending
	if req.Status != "" {
		if status, err = parseExpenseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	e := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Category:    category,
		Amount:      amount,
		Description: req.Description,
		ExpenseDate: date,
		Status:      status,
		AuditFields: newAudit(userID, s.now()),
	}
	if err := s.expenseRepo.SaveExpense(ctx, e); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("category", string(category)))
		return nil, err
	}
	s.LogInfo(ctx, "Expense recorded", slog.String("expense_id", e.ExpenseID), slog.String("amount", amount.StringFixed(2)))
	return &e, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, id string) (*domain.Expense, error) {
	e, err := s.expenseRepo.FindExpenseByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get expense", slog.String("expense_id", id))
		}
		return nil, err
	}
	return e, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	filter := domain.ExpenseFilter{Limit: params.Limit, Offset: params.Offset}
	var err error
	if params.Category != "" {
		if filter.Category, err = parseExpenseCategory(params.Category); err != nil {
			return nil, err
		}
	}
	if params.Status != "" {
		if filter.Status, err = parseExpenseStatus(params.Status); err != nil {
			return nil, err
		}
	}
	if params.From != "" {
		from, err := parseDate("from", params.From)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := parseDate("to", params.To)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, err
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// UpdateExpense patches the given fields. Expenses generated by a withdrawal or a
// distribution keep their category and amount.
func (s *expenseService) UpdateExpense(ctx context.Context, id string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	e, err := s.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	linked := e.ReferenceID != nil

	if req.Category != nil {
		c, err := parseExpenseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		if linked && c != e.Category {
			return nil, fmt.Errorf("%w: category of a linked expense cannot change", apperrors.ErrConflict)
		}
		e.Category = c
	}
	if req.Amount != nil {
		amount, err := expenseAmount(req.Amount)
		if err != nil {
			return nil, err
		}
		if linked && !amount.Equal(e.Amount) {
			return nil, fmt.Errorf("%w: amount of a linked expense cannot change", apperrors.ErrConflict)
		}
		e.Amount = amount
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.ExpenseDate != nil {
		if e.ExpenseDate, err = parseDate("expenseDate", *req.ExpenseDate); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if e.Status, err = parseExpenseStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	touch(&e.AuditFields, userID, s.now())

	if err := s.expenseRepo.UpdateExpense(ctx, *e); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", id))
		return nil, err
	}
	return e, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.expenseRepo.DeleteExpense(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", id))
		}
		return err
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", id))
	return nil
}

// SummarizeExpenses totals a calendar month, or the whole year when month is 0.
func (s *expenseService) SummarizeExpenses(ctx context.Context, year int, month int) ([]domain.ExpenseCategoryTotal, error) {
	if month < 0 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	var from, to time.Time
	if month == 0 {
		from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0)
	} else {
		from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	}

	rows, err := s.expenseRepo.SummarizeExpenses(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize expenses", slog.Int("year", year), slog.Int("month", month))
		return nil, err
	}
	if rows == nil {
		return []domain.ExpenseCategoryTotal{}, nil
	}
	return rows, nil
}
