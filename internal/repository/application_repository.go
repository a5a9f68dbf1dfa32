package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// ApplicationRepository encapsulates loan-application persistence. Every
// mutation is a single-row statement; concurrent writers resolve last-write-wins
// at the store, not here.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.LoanApplication) error
	Update(ctx context.Context, app *domain.LoanApplication) error
	GetByID(ctx context.Context, id string) (*domain.LoanApplication, error)
	List(ctx context.Context) ([]domain.LoanApplication, error)
	ListByBorrowerEmail(ctx context.Context, email string) ([]domain.LoanApplication, error)
	Delete(ctx context.Context, id string) error
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, loan_id, loan_title, full_name, borrower_email, loan_amount, details,
               status, fee_status, repay_status, repay_amount, deadline, comments,
               created_at, approved_at, disbursed_at, paid_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.LoanApplication) error {
	const query = `
        INSERT INTO applications (loan_id, loan_title, full_name, borrower_email, loan_amount, details, status, fee_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		app.LoanID,
		app.LoanTitle,
		app.FullName,
		app.BorrowerEmail,
		app.LoanAmount,
		app.Details,
		app.Status,
		app.FeeStatus,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.LoanApplication) error {
	const query = `
        UPDATE applications SET status=$1, fee_status=$2, repay_status=$3, repay_amount=$4, deadline=$5,
            comments=$6, approved_at=$7, disbursed_at=$8, paid_at=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		app.Status,
		app.FeeStatus,
		app.RepayStatus,
		app.RepayAmount,
		app.Deadline,
		app.Comments,
		app.ApprovedAt,
		app.DisbursedAt,
		app.PaidAt,
		app.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.LoanApplication, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id=$1`
	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

func (r *applicationRepository) List(ctx context.Context) ([]domain.LoanApplication, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepository) ListByBorrowerEmail(ctx context.Context, email string) ([]domain.LoanApplication, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE LOWER(borrower_email)=LOWER($1) ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM applications WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func collectApplications(rows pgx.Rows) ([]domain.LoanApplication, error) {
	var apps []domain.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.LoanApplication, error) {
	var app domain.LoanApplication
	if err := row.Scan(
		&app.ID,
		&app.LoanID,
		&app.LoanTitle,
		&app.FullName,
		&app.BorrowerEmail,
		&app.LoanAmount,
		&app.Details,
		&app.Status,
		&app.FeeStatus,
		&app.RepayStatus,
		&app.RepayAmount,
		&app.Deadline,
		&app.Comments,
		&app.CreatedAt,
		&app.ApprovedAt,
		&app.DisbursedAt,
		&app.PaidAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}
