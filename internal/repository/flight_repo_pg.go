package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flightbook/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightFilter is a conjunction of optional predicates; zero values impose no constraint.
type FlightFilter struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureDate    *time.Time
	MinPriceCents    *int64
	MaxPriceCents    *int64
	StartDate        *time.Time
	EndDate          *time.Time
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Airports(ctx context.Context) ([]string, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, departure_airport, arrival_airport, departure_time, arrival_time, price_cents, available_seats, total_seats, status, created_at, updated_at`

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.FlightNumber, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.AvailableSeats, &f.TotalSeats, &f.Status, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
}

func (r *PGFlightRepository) Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.DepartureAirport != "" {
		conds = append(conds, `departure_airport ILIKE '%' || `+arg(filter.DepartureAirport)+` || '%'`)
	}
	if filter.ArrivalAirport != "" {
		conds = append(conds, `arrival_airport ILIKE '%' || `+arg(filter.ArrivalAirport)+` || '%'`)
	}
	if filter.DepartureDate != nil {
		conds = append(conds, `departure_time::date = `+arg(*filter.DepartureDate))
	}
	if filter.MinPriceCents != nil {
		conds = append(conds, `price_cents >= `+arg(*filter.MinPriceCents))
	}
	if filter.MaxPriceCents != nil {
		conds = append(conds, `price_cents <= `+arg(*filter.MaxPriceCents))
	}
	if filter.StartDate != nil {
		conds = append(conds, `departure_time::date >= `+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conds = append(conds, `departure_time::date <= `+arg(*filter.EndDate))
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY departure_time`

	return r.query(ctx, query, args...)
}

func (r *PGFlightRepository) query(ctx context.Context, query string, args ...any) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, departure_airport, arrival_airport, departure_time, arrival_time, price_cents, available_seats, total_seats, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureTime, flight.ArrivalTime, flight.PriceCents, flight.AvailableSeats, flight.TotalSeats, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx, `UPDATE flights SET flight_number=$2, departure_airport=$3, arrival_airport=$4, departure_time=$5, arrival_time=$6, price_cents=$7, available_seats=$8, total_seats=$9, status=$10, updated_at=now()
		WHERE id=$1
		RETURNING updated_at`,
		flight.ID, flight.FlightNumber, flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureTime, flight.ArrivalTime, flight.PriceCents, flight.AvailableSeats, flight.TotalSeats, flight.Status)
	if err := row.Scan(&flight.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGFlightRepository) Airports(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT departure_airport FROM flights UNION SELECT arrival_airport FROM flights ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]string, 0)
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
