package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

const uniqueViolation = "23505"

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

const bookingColumns = `id, lead_id, site_id, executive_id, amount, booking_date, created_at`

// Create maps the lead_id unique violation to the duplicate-booking
// validation error, so a concurrent writer racing past the existence
// check still cannot produce a second booking.
func (r *BookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, lead_id, site_id, executive_id, amount, booking_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		booking.ID, booking.LeadID, booking.SiteID, booking.ExecutiveID,
		booking.Amount, booking.BookingDate, booking.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return usecase.NewValidationError("duplicate booking for lead %s", booking.LeadID)
	}
	return err
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	return err
}

// FindByLeadID returns (nil, nil) when the lead has no booking.
func (r *BookingRepository) FindByLeadID(ctx context.Context, leadID string) (*entity.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE lead_id = $1`, leadID)

	booking, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return booking, err
}

func (r *BookingRepository) List(ctx context.Context) ([]entity.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []entity.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID, &booking.LeadID, &booking.SiteID, &booking.ExecutiveID,
		&booking.Amount, &booking.BookingDate, &booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
