package repository

import (
	"context"
	"errors"

	"flightbook/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.BookingDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error)
	SeatsForFlight(ctx context.Context, flightID int64) ([]string, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create reserves seats and records the booking in one transaction. The
// availability check and the decrement are a single conditional UPDATE, so two
// concurrent bookings can never both pass the check on the same seats.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	n := len(booking.SeatsReserved)
	cmd, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1 AND available_seats >= $2`, booking.FlightID, n)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, booking.FlightID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrNotEnoughSeats
	}

	seats := booking.SeatsReserved
	if seats == nil {
		seats = []string{}
	}
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, reference, seats_reserved, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, booking_time`,
		booking.UserID, booking.FlightID, booking.Reference, seats, booking.PaymentStatus).
		Scan(&booking.ID, &booking.BookingTime); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const bookingDetailQuery = `SELECT b.id, b.user_id, b.flight_id, b.reference, b.booking_time, b.seats_reserved, b.payment_status, u.username,
	f.id, f.flight_number, f.departure_airport, f.arrival_airport, f.departure_time, f.arrival_time, f.price_cents, f.available_seats, f.total_seats, f.status, f.created_at, f.updated_at
	FROM bookings b
	JOIN flights f ON f.id = b.flight_id
	JOIN users u ON u.id = b.user_id`

func scanBookingDetail(row pgx.Row) (*domain.BookingDetail, error) {
	var d domain.BookingDetail
	b := &d.Booking
	f := &d.Flight
	err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.Reference, &b.BookingTime, &b.SeatsReserved, &b.PaymentStatus, &d.Username,
		&f.ID, &f.FlightNumber, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.AvailableSeats, &f.TotalSeats, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRow(ctx, bookingDetailQuery+` WHERE b.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	rows, err := r.db.Query(ctx, bookingDetailQuery+` WHERE b.user_id=$1 ORDER BY b.booking_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

// SeatsForFlight returns every reserved seat across the flight's bookings,
// duplicates included; callers deduplicate.
func (r *PGBookingRepository) SeatsForFlight(ctx context.Context, flightID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT seats_reserved FROM bookings WHERE flight_id=$1`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]string, 0)
	for rows.Next() {
		var s []string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seats = append(seats, s...)
	}
	return seats, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
