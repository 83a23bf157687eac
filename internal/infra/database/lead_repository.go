package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, client_name, phone, email, lead_source, site_id, assigned_executive_id, status, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, client_name, phone, email, lead_source, site_id, assigned_executive_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.ClientName, lead.Phone, nullString(lead.Email), lead.LeadSource,
		lead.SiteID, lead.AssignedExecutiveID, lead.Status, lead.CreatedAt, lead.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET client_name = $2, phone = $3, email = $4, lead_source = $5, status = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.ClientName, lead.Phone, nullString(lead.Email), lead.LeadSource,
		lead.Status, lead.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return usecase.NewNotFoundError("lead", lead.ID)
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.NewNotFoundError("lead", id)
	}
	return lead, err
}

func (r *LeadRepository) ListByExecutiveAndSite(ctx context.Context, executiveID, siteID string) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE assigned_executive_id = $1 AND site_id = $2 ORDER BY seq`
	return r.queryLeads(ctx, query, executiveID, siteID)
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	return r.queryLeads(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY seq`)
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var email sql.NullString

	err := row.Scan(
		&lead.ID, &lead.ClientName, &lead.Phone, &email, &lead.LeadSource,
		&lead.SiteID, &lead.AssignedExecutiveID, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Email = email.String
	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
