package dto

import (
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Category    string           `json:"category" binding:"required,expensecategory"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"max=1000"`
	ExpenseDate string           `json:"expenseDate" binding:"required,datetime=2006-01-02"`
	Status      string           `json:"status" binding:"omitempty,oneof=PENDING PAID CANCELLED"`
}

type UpdateExpenseRequest struct {
	Category    *string          `json:"category" binding:"omitempty,expensecategory"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	ExpenseDate *string          `json:"expenseDate" binding:"omitempty,datetime=2006-01-02"`
	Status      *string          `json:"status" binding:"omitempty,oneof=PENDING PAID CANCELLED"`
}

type ListExpensesParams struct {
	Category string `form:"category" binding:"omitempty,expensecategory"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING PAID CANCELLED"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit    int    `form:"limit,default=50"`
	Offset   int    `form:"offset,default=0"`
}

type ExpenseSummaryParams struct {
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

type ExpenseSummaryResponse struct {
	Year       int                           `json:"year"`
	Month      int                           `json:"month,omitempty"`
	Categories []domain.ExpenseCategoryTotal `json:"categories"`
	Total      decimal.Decimal               `json:"total"`
}

func ToExpenseSummaryResponse(year, month int, rows []domain.ExpenseCategoryTotal) ExpenseSummaryResponse {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	return ExpenseSummaryResponse{Year: year, Month: month, Categories: rows, Total: total}
}

type ListExpensesResponse struct {
	Expenses []domain.Expense `json:"expenses"`
}
