package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kycapi/internal/model"
	"kycapi/internal/repository"
)

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
// Nested application parts are stored as JSONB columns.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

const applicationColumns = `id, investor_type, contact_info, declarations, edd_screening,
		investor_details, beneficial_owners, authorized_signatories, documents,
		status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new application row and returns the stored record.
func (r *ApplicationPostgres) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	const q = `
		INSERT INTO kyc_applications (investor_type, contact_info, declarations, edd_screening,
			investor_details, beneficial_owners, authorized_signatories, documents,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + applicationColumns

	args, err := applicationArgs(app)
	if err != nil {
		return nil, err
	}
	out, err := scanApplication(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return out, nil
}

// FindByID fetches a single application by its ID.
func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.Application, error) {
	q := `SELECT ` + applicationColumns + `
		FROM kyc_applications
		WHERE id = $1`
	return r.findOne(ctx, q, id)
}

// FindLatestByEmail fetches the newest application for a contact email.
func (r *ApplicationPostgres) FindLatestByEmail(ctx context.Context, email string) (*model.Application, error) {
	q := `SELECT ` + applicationColumns + `
		FROM kyc_applications
		WHERE contact_info->>'email' = $1
		ORDER BY created_at DESC
		LIMIT 1`
	return r.findOne(ctx, q, email)
}

func (r *ApplicationPostgres) findOne(ctx context.Context, q string, arg any) (*model.Application, error) {
	app, err := scanApplication(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

// UpdateStatus writes the status of one application.
func (r *ApplicationPostgres) UpdateStatus(ctx context.Context, id string, status model.Status, updatedAt time.Time) error {
	const q = `UPDATE kyc_applications SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, q, string(status), updatedAt, id)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns applications using LIMIT/OFFSET pagination and a total count.
func (r *ApplicationPostgres) List(ctx context.Context, f repository.ApplicationFilter, pq repository.PageQuery) (*repository.PageResult[model.Application], error) {
	where := ""
	var args []any
	if f.Status != "" {
		where = "WHERE status = $1"
		args = append(args, string(f.Status))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kyc_applications `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	qList := fmt.Sprintf(`SELECT %s
		FROM kyc_applications %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, applicationColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Application]{
		Items: items,
		Total: total,
	}, nil
}

func applicationArgs(app *model.Application) ([]any, error) {
	parts := []struct {
		name string
		v    any
	}{
		{"contact_info", app.ContactInfo},
		{"declarations", emptySlice(app.Declarations)},
		{"edd_screening", app.EDDScreening},
		{"investor_details", app.InvestorDetails},
		{"beneficial_owners", emptySlice(app.BeneficialOwners)},
		{"authorized_signatories", emptySlice(app.AuthorizedSignatories)},
		{"documents", documentsOrEmpty(app.Documents)},
	}

	args := make([]any, 0, 11)
	args = append(args, string(app.InvestorType))
	for _, p := range parts {
		b, err := json.Marshal(p.v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", p.name, err)
		}
		args = append(args, string(b))
	}
	return append(args, string(app.Status), app.CreatedAt, app.UpdatedAt), nil
}

func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func documentsOrEmpty(d model.Documents) model.Documents {
	if d == nil {
		return model.Documents{}
	}
	return d
}

func scanApplication(s rowScanner) (*model.Application, error) {
	var (
		app                                                      model.Application
		investorType, status                                     string
		contact, decls, edd, details, owners, signatories, docs []byte
	)
	if err := s.Scan(
		&app.ID,
		&investorType,
		&contact,
		&decls,
		&edd,
		&details,
		&owners,
		&signatories,
		&docs,
		&status,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}

	app.InvestorType = model.InvestorType(investorType)
	app.Status = model.Status(status)

	targets := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"contact_info", contact, &app.ContactInfo},
		{"declarations", decls, &app.Declarations},
		{"edd_screening", edd, &app.EDDScreening},
		{"beneficial_owners", owners, &app.BeneficialOwners},
		{"authorized_signatories", signatories, &app.AuthorizedSignatories},
		{"documents", docs, &app.Documents},
	}
	for _, t := range targets {
		if len(t.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(t.raw, t.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.name, err)
		}
	}

	if len(details) > 0 && app.InvestorType.Valid() {
		d, err := model.ParseInvestorDetails(app.InvestorType, details)
		if err != nil {
			return nil, fmt.Errorf("decode investor_details: %w", err)
		}
		app.InvestorDetails = d
	}
	return &app, nil
}
