package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const invoiceSequenceName = "invoice"

type InvoiceRepository interface {
	// Create allocates the sequential invoice number and persists the
	// invoice together with its line items in one transaction. The
	// allocated number is written back into invoice.InvoiceNumber.
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*models.Invoice, error)
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceRepo struct {
	db DB
}

func NewInvoiceRepo(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return common.NewPersistenceError("begin invoice transaction", err)
	}
	defer tx.Rollback(ctx)

	number, err := nextSequenceNumber(ctx, tx, invoiceSequenceName)
	if err != nil {
		return common.NewPersistenceError("allocate invoice number", err)
	}
	invoice.InvoiceNumber = fmt.Sprintf("INV-%06d", number)

	insertInvoice := `
		INSERT INTO invoices (id, invoice_number, patient_id, subtotal, discount, final_amount, paid_amount, balance, payment_mode, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.Exec(ctx, insertInvoice, invoice.ID, invoice.InvoiceNumber, invoice.PatientID, invoice.Subtotal, invoice.Discount, invoice.FinalAmount, invoice.PaidAmount, invoice.Balance, invoice.PaymentMode, invoice.CreatedBy, invoice.CreatedAt)
	if err != nil {
		return common.NewPersistenceError("insert invoice", err)
	}

	insertItem := `
		INSERT INTO invoice_items (id, invoice_id, test_id, test_name, price, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range invoice.Items {
		_, err = tx.Exec(ctx, insertItem, item.ID, item.InvoiceID, item.TestID, item.TestName, item.Price, item.Position)
		if err != nil {
			return common.NewPersistenceError("insert invoice item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return common.NewPersistenceError("commit invoice", err)
	}
	return nil
}

// nextSequenceNumber atomically increments the named counter. The upsert
// runs under row-level locking, so concurrent allocations serialize and
// never hand out the same number twice.
func nextSequenceNumber(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	query := `
		INSERT INTO sequences (name, last_number, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (name)
		DO UPDATE SET
			last_number = sequences.last_number + 1,
			updated_at = NOW()
		RETURNING last_number
	`
	var number int64
	if err := tx.QueryRow(ctx, query, name).Scan(&number); err != nil {
		return 0, err
	}
	return number, nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `
		SELECT i.id, i.invoice_number, i.patient_id, p.name, i.subtotal, i.discount, i.final_amount, i.paid_amount, i.balance, i.payment_mode, i.created_by, i.created_at
		FROM invoices i
		JOIN patients p ON p.id = i.patient_id
		WHERE i.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.PatientID, &invoice.PatientName, &invoice.Subtotal, &invoice.Discount, &invoice.FinalAmount, &invoice.PaidAmount, &invoice.Balance, &invoice.PaymentMode, &invoice.CreatedBy, &invoice.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("invoice")
		}
		return nil, common.NewPersistenceError("get invoice", err)
	}

	invoice.Status = models.DerivePaymentStatus(invoice.FinalAmount, invoice.PaidAmount)

	if err := r.attachItems(ctx, []*models.Invoice{invoice}); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, limit, offset int) ([]*models.Invoice, error) {
	query := `
		SELECT i.id, i.invoice_number, i.patient_id, p.name, i.subtotal, i.discount, i.final_amount, i.paid_amount, i.balance, i.payment_mode, i.created_by, i.created_at
		FROM invoices i
		JOIN patients p ON p.id = i.patient_id
		ORDER BY i.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, common.NewPersistenceError("list invoices", err)
	}
	defer rows.Close()

	invoices, err := scanInvoices(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepo) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Invoice, error) {
	query := `
		SELECT i.id, i.invoice_number, i.patient_id, p.name, i.subtotal, i.discount, i.final_amount, i.paid_amount, i.balance, i.payment_mode, i.created_by, i.created_at
		FROM invoices i
		JOIN patients p ON p.id = i.patient_id
		WHERE i.created_at BETWEEN $1 AND $2
		ORDER BY i.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, common.NewPersistenceError("list invoices by date range", err)
	}
	defer rows.Close()

	invoices, err := scanInvoices(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Delete hard-deletes an invoice and its line items. Ledger-only: patient
// and catalog records are untouched.
func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return common.NewPersistenceError("begin invoice delete", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
		return common.NewPersistenceError("delete invoice items", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return common.NewPersistenceError("delete invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("invoice")
	}

	if err := tx.Commit(ctx); err != nil {
		return common.NewPersistenceError("commit invoice delete", err)
	}
	return nil
}

func (r *invoiceRepo) attachItems(ctx context.Context, invoices []*models.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(invoices))
	byID := make(map[uuid.UUID]*models.Invoice, len(invoices))
	for _, invoice := range invoices {
		ids = append(ids, invoice.ID)
		byID[invoice.ID] = invoice
	}

	query := `
		SELECT id, invoice_id, test_id, test_name, price, position
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position ASC
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return common.NewPersistenceError("list invoice items", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := models.InvoiceItem{}
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.TestID, &item.TestName, &item.Price, &item.Position); err != nil {
			return common.NewPersistenceError("scan invoice item", err)
		}
		if invoice, ok := byID[item.InvoiceID]; ok {
			invoice.Items = append(invoice.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return common.NewPersistenceError("scan invoice items", err)
	}
	return nil
}

func scanInvoices(rows pgx.Rows) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := rows.Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.PatientID, &invoice.PatientName, &invoice.Subtotal, &invoice.Discount, &invoice.FinalAmount, &invoice.PaidAmount, &invoice.Balance, &invoice.PaymentMode, &invoice.CreatedBy, &invoice.CreatedAt); err != nil {
			return nil, common.NewPersistenceError("scan invoice", err)
		}
		invoice.Status = models.DerivePaymentStatus(invoice.FinalAmount, invoice.PaidAmount)
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("scan invoices", err)
	}
	return invoices, nil
}
