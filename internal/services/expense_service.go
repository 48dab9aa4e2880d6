package services

import (
	"context"
	"sort"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/repositories"

	"github.com/google/uuid"
)

const maxExpenseAmount = 10000000.00

// ExpenseDashboard summarizes the ledger for the dashboard view.
type ExpenseDashboard struct {
	TodayAmount       float64 `json:"today_amount"`
	MonthAmount       float64 `json:"month_amount"`
	PendingAmount     float64 `json:"pending_amount"`
	PendingCount      int     `json:"pending_count"`
	TopCategory       string  `json:"top_category"`
	TopCategoryAmount float64 `json:"top_category_amount"`
}

type ExpenseServiceInterface interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	Dashboard(ctx context.Context, now time.Time) (*ExpenseDashboard, error)
}

type expenseService struct {
	expenseRepo repositories.ExpenseRepository
}

// NewExpenseService creates a new expense ledger service
func NewExpenseService(expenseRepo repositories.ExpenseRepository) ExpenseServiceInterface {
	return &expenseService{expenseRepo: expenseRepo}
}

// CreateExpense validates and persists a ledger entry. Entries are
// immutable once created.
func (s *expenseService) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if err := common.ValidateRequiredString(expense.Category, "category"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(expense.SubCategory, "sub_category"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(expense.Description, "description"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(expense.EnteredBy, "entered_by"); err != nil {
		return err
	}
	if err := common.ValidateAmount(expense.Amount, "amount", maxExpenseAmount); err != nil {
		return err
	}
	if expense.Date.IsZero() {
		return common.NewValidationError("date", "is required")
	}
	if !models.IsValidPaymentMode(expense.PaymentMode) {
		return common.NewValidationError("payment_mode", "must be one of Cash, UPI, Bank Transfer, Card, Cheque")
	}
	if expense.Status != models.ExpenseStatusPaid && expense.Status != models.ExpenseStatusPending {
		return common.NewValidationError("status", "must be Paid or Pending")
	}

	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	expense.CreatedAt = time.Now()

	return s.expenseRepo.Create(ctx, expense)
}

// ListExpenses returns all entries, most recent date first.
func (s *expenseService) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.expenseRepo.List(ctx)
}

// DeleteExpense removes an entry. A second delete of the same id fails with
// NotFoundError; there is no silent no-op.
func (s *expenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, id)
}

// Dashboard computes the ledger aggregates relative to now.
func (s *expenseService) Dashboard(ctx context.Context, now time.Time) (*ExpenseDashboard, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	dashboard := BuildExpenseDashboard(expenses, now)
	return &dashboard, nil
}

// BuildExpenseDashboard reduces the full expense set into dashboard
// aggregates. "Today" and "this month" use local calendar boundaries. The
// top category is the one with the highest cumulative amount; equal totals
// resolve to the lexicographically smallest category name.
func BuildExpenseDashboard(expenses []*models.Expense, now time.Time) ExpenseDashboard {
	dashboard := ExpenseDashboard{}
	byCategory := map[string]float64{}

	year, month, day := now.Date()
	for _, expense := range expenses {
		ey, em, ed := expense.Date.Date()
		if ey == year && em == month && ed == day {
			dashboard.TodayAmount += expense.Amount
		}
		if ey == year && em == month {
			dashboard.MonthAmount += expense.Amount
		}
		if expense.Status == models.ExpenseStatusPending {
			dashboard.PendingAmount += expense.Amount
			dashboard.PendingCount++
		}
		byCategory[expense.Category] += expense.Amount
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		if byCategory[category] > dashboard.TopCategoryAmount {
			dashboard.TopCategory = category
			dashboard.TopCategoryAmount = byCategory[category]
		}
	}

	return dashboard
}
