package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type VisitRepository struct {
	DB *sql.DB
}

func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{DB: db}
}

const visitColumns = `id, lead_id, executive_id, site_id, checkin_time, checkout_time, location_verified, latitude, longitude`

func (r *VisitRepository) Create(ctx context.Context, visit *entity.Visit) error {
	query := `
		INSERT INTO visits (id, lead_id, executive_id, site_id, checkin_time, checkout_time, location_verified, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		visit.ID, visit.LeadID, visit.ExecutiveID, visit.SiteID,
		visit.CheckinTime, visit.CheckoutTime, visit.LocationVerified,
		visit.Latitude, visit.Longitude,
	)
	return err
}

func (r *VisitRepository) Update(ctx context.Context, visit *entity.Visit) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE visits SET checkout_time = $2 WHERE id = $1`,
		visit.ID, visit.CheckoutTime,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return usecase.NewNotFoundError("visit", visit.ID)
	}
	return nil
}

func (r *VisitRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM visits WHERE id = $1`, id)
	return err
}

func (r *VisitRepository) FindByID(ctx context.Context, id string) (*entity.Visit, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+visitColumns+` FROM visits WHERE id = $1`, id)

	visit, err := scanVisit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.NewNotFoundError("visit", id)
	}
	return visit, err
}

// FindOpenByExecutive returns (nil, nil) when the executive has no
// open visit.
func (r *VisitRepository) FindOpenByExecutive(ctx context.Context, executiveID string) (*entity.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE executive_id = $1 AND checkout_time IS NULL ORDER BY checkin_time DESC LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, executiveID)

	visit, err := scanVisit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return visit, err
}

func (r *VisitRepository) List(ctx context.Context) ([]entity.Visit, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+visitColumns+` FROM visits ORDER BY checkin_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []entity.Visit{}
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, *visit)
	}
	return visits, rows.Err()
}

func scanVisit(row rowScanner) (*entity.Visit, error) {
	var visit entity.Visit
	var checkout sql.NullTime

	err := row.Scan(
		&visit.ID, &visit.LeadID, &visit.ExecutiveID, &visit.SiteID,
		&visit.CheckinTime, &checkout, &visit.LocationVerified,
		&visit.Latitude, &visit.Longitude,
	)
	if err != nil {
		return nil, err
	}
	if checkout.Valid {
		t := checkout.Time.In(time.Local)
		visit.CheckoutTime = &t
	}
	return &visit, nil
}
