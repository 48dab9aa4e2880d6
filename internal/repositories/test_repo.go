package repositories

import (
	"context"
	"errors"

	"labdesk/internal/common"
	"labdesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TestRepository interface {
	Create(ctx context.Context, test *models.LabTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.LabTest, error)
	List(ctx context.Context, limit, offset int) ([]*models.LabTest, error)
	Update(ctx context.Context, test *models.LabTest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type testRepo struct {
	db DB
}

func NewTestRepo(db DB) TestRepository {
	return &testRepo{db: db}
}

func (r *testRepo) Create(ctx context.Context, test *models.LabTest) error {
	query := `
		INSERT INTO lab_tests (id, name, category, price, sample_type, turnaround_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, test.ID, test.Name, test.Category, test.Price, test.SampleType, test.TurnaroundHours)
	if err != nil {
		return common.NewPersistenceError("create lab test", err)
	}
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.LabTest, error) {
	test := &models.LabTest{}
	query := `
		SELECT id, name, category, price, sample_type, turnaround_hours, created_at, updated_at
		FROM lab_tests
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&test.ID, &test.Name, &test.Category, &test.Price, &test.SampleType, &test.TurnaroundHours, &test.CreatedAt, &test.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("lab test")
		}
		return nil, common.NewPersistenceError("get lab test", err)
	}
	return test, nil
}

func (r *testRepo) List(ctx context.Context, limit, offset int) ([]*models.LabTest, error) {
	query := `
		SELECT id, name, category, price, sample_type, turnaround_hours, created_at, updated_at
		FROM lab_tests
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, common.NewPersistenceError("list lab tests", err)
	}
	defer rows.Close()

	var tests []*models.LabTest
	for rows.Next() {
		test := &models.LabTest{}
		if err := rows.Scan(&test.ID, &test.Name, &test.Category, &test.Price, &test.SampleType, &test.TurnaroundHours, &test.CreatedAt, &test.UpdatedAt); err != nil {
			return nil, common.NewPersistenceError("scan lab test", err)
		}
		tests = append(tests, test)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("scan lab tests", err)
	}
	return tests, nil
}

func (r *testRepo) Update(ctx context.Context, test *models.LabTest) error {
	query := `
		UPDATE lab_tests
		SET name = $1, category = $2, price = $3, sample_type = $4, turnaround_hours = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, test.Name, test.Category, test.Price, test.SampleType, test.TurnaroundHours, test.ID)
	if err != nil {
		return common.NewPersistenceError("update lab test", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("lab test")
	}
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM lab_tests WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return common.NewPersistenceError("delete lab test", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("lab test")
	}
	return nil
}
