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

const sampleSequenceName = "sample"

type SampleRepository interface {
	// Create allocates the sequential sample code and persists the record.
	Create(ctx context.Context, sample *models.Sample) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sample, error)
	List(ctx context.Context, limit, offset int) ([]*models.Sample, error)
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Sample, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sampleRepo struct {
	db DB
}

func NewSampleRepo(db DB) SampleRepository {
	return &sampleRepo{db: db}
}

func (r *sampleRepo) Create(ctx context.Context, sample *models.Sample) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return common.NewPersistenceError("begin sample transaction", err)
	}
	defer tx.Rollback(ctx)

	number, err := nextSequenceNumber(ctx, tx, sampleSequenceName)
	if err != nil {
		return common.NewPersistenceError("allocate sample code", err)
	}
	sample.SampleCode = fmt.Sprintf("SMP-%06d", number)

	query := `
		INSERT INTO samples (id, sample_code, patient_id, test_names, status, collected_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err = tx.Exec(ctx, query, sample.ID, sample.SampleCode, sample.PatientID, sample.TestNames, sample.Status, sample.CollectedAt)
	if err != nil {
		return common.NewPersistenceError("insert sample", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return common.NewPersistenceError("commit sample", err)
	}
	return nil
}

func (r *sampleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Sample, error) {
	sample := &models.Sample{}
	query := `
		SELECT s.id, s.sample_code, s.patient_id, p.name, s.test_names, s.status, s.collected_at, s.created_at
		FROM samples s
		JOIN patients p ON p.id = s.patient_id
		WHERE s.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&sample.ID, &sample.SampleCode, &sample.PatientID, &sample.PatientName, &sample.TestNames, &sample.Status, &sample.CollectedAt, &sample.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("sample")
		}
		return nil, common.NewPersistenceError("get sample", err)
	}
	return sample, nil
}

func (r *sampleRepo) List(ctx context.Context, limit, offset int) ([]*models.Sample, error) {
	query := `
		SELECT s.id, s.sample_code, s.patient_id, p.name, s.test_names, s.status, s.collected_at, s.created_at
		FROM samples s
		JOIN patients p ON p.id = s.patient_id
		ORDER BY s.collected_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, common.NewPersistenceError("list samples", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

func (r *sampleRepo) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Sample, error) {
	query := `
		SELECT s.id, s.sample_code, s.patient_id, p.name, s.test_names, s.status, s.collected_at, s.created_at
		FROM samples s
		JOIN patients p ON p.id = s.patient_id
		WHERE s.collected_at BETWEEN $1 AND $2
		ORDER BY s.collected_at DESC
	`
	rows, err := r.db.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, common.NewPersistenceError("list samples by date range", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

func (r *sampleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE samples SET status = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return common.NewPersistenceError("update sample status", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("sample")
	}
	return nil
}

func (r *sampleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM samples WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return common.NewPersistenceError("delete sample", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("sample")
	}
	return nil
}

func scanSamples(rows pgx.Rows) ([]*models.Sample, error) {
	var samples []*models.Sample
	for rows.Next() {
		sample := &models.Sample{}
		if err := rows.Scan(&sample.ID, &sample.SampleCode, &sample.PatientID, &sample.PatientName, &sample.TestNames, &sample.Status, &sample.CollectedAt, &sample.CreatedAt); err != nil {
			return nil, common.NewPersistenceError("scan sample", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("scan samples", err)
	}
	return samples, nil
}
