package repositories

import (
	"context"

	"labdesk/internal/common"
	"labdesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	List(ctx context.Context) ([]*models.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepo struct {
	db DB
}

func NewExpenseRepo(db DB) ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (id, category, sub_category, description, amount, payment_mode, status, vendor, invoice_number, date, remarks, entered_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
	`
	_, err := r.db.Exec(ctx, query, expense.ID, expense.Category, expense.SubCategory, expense.Description, expense.Amount, expense.PaymentMode, expense.Status, expense.Vendor, expense.InvoiceNumber, expense.Date, expense.Remarks, expense.EnteredBy)
	if err != nil {
		return common.NewPersistenceError("create expense", err)
	}
	return nil
}

// List returns all expense records, most recent date first. Entries sharing
// a date keep insertion order.
func (r *expenseRepo) List(ctx context.Context) ([]*models.Expense, error) {
	query := `
		SELECT id, category, sub_category, description, amount, payment_mode, status, vendor, invoice_number, date, remarks, entered_by, created_at
		FROM expenses
		ORDER BY date DESC, created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, common.NewPersistenceError("list expenses", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// Delete removes an expense by id. Deleting an id that does not exist, or
// the same id a second time, reports NotFoundError rather than a silent no-op.
func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM expenses WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return common.NewPersistenceError("delete expense", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("expense")
	}
	return nil
}

func scanExpenses(rows pgx.Rows) ([]*models.Expense, error) {
	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.Category, &expense.SubCategory, &expense.Description, &expense.Amount, &expense.PaymentMode, &expense.Status, &expense.Vendor, &expense.InvoiceNumber, &expense.Date, &expense.Remarks, &expense.EnteredBy, &expense.CreatedAt); err != nil {
			return nil, common.NewPersistenceError("scan expense", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("scan expenses", err)
	}
	return expenses, nil
}
