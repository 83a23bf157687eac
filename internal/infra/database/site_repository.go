package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type SiteRepository struct {
	DB *sql.DB
}

func NewSiteRepository(db *sql.DB) *SiteRepository {
	return &SiteRepository{DB: db}
}

const siteColumns = `id, name, latitude, longitude, radius_meters, created_at`

func (r *SiteRepository) Create(ctx context.Context, site *entity.Site) error {
	query := `
		INSERT INTO sites (id, name, latitude, longitude, radius_meters, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		site.ID, site.Name, site.Latitude, site.Longitude, site.RadiusMeters, site.CreatedAt,
	)
	return err
}

func (r *SiteRepository) Update(ctx context.Context, site *entity.Site) error {
	query := `
		UPDATE sites SET name = $2, latitude = $3, longitude = $4, radius_meters = $5 WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		site.ID, site.Name, site.Latitude, site.Longitude, site.RadiusMeters,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return usecase.NewNotFoundError("site", site.ID)
	}
	return nil
}

func (r *SiteRepository) FindByID(ctx context.Context, id string) (*entity.Site, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+siteColumns+` FROM sites WHERE id = $1`, id)

	var site entity.Site
	err := row.Scan(&site.ID, &site.Name, &site.Latitude, &site.Longitude, &site.RadiusMeters, &site.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.NewNotFoundError("site", id)
	}
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *SiteRepository) List(ctx context.Context) ([]entity.Site, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+siteColumns+` FROM sites ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []entity.Site{}
	for rows.Next() {
		var site entity.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.Latitude, &site.Longitude, &site.RadiusMeters, &site.CreatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}
