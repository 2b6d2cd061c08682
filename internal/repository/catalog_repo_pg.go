package repository

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightCatalogRepository is the read-only view of the scheduled flight
// inventory.
type FlightCatalogRepository interface {
	// SearchItineraries returns up to max itineraries from origin to dest on
	// the given day: direct legs first, ordered by ascending actual time,
	// then, unless directOnly, one-stop pairs ordered by ascending summed
	// time filling the remaining slots. Both queries run in one read
	// transaction. max <= 0 yields an empty result.
	SearchItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int) ([]domain.Itinerary, error)
}

type PGFlightCatalogRepository struct {
	db *pgxpool.Pool
}

func NewFlightCatalogRepository(db *pgxpool.Pool) FlightCatalogRepository {
	return &PGFlightCatalogRepository{db: db}
}

const directLegsSQL = `
	SELECT fid, year, month_id, day_of_month, carrier_id, flight_num, origin_city, dest_city, actual_time
	FROM flights
	WHERE origin_city = $1 AND dest_city = $2 AND day_of_month = $3 AND actual_time IS NOT NULL
	ORDER BY actual_time ASC
	LIMIT $4`

const oneStopPairsSQL = `
	SELECT f1.fid, f1.year, f1.month_id, f1.day_of_month, f1.carrier_id, f1.flight_num,
	       f1.origin_city, f1.dest_city, f1.actual_time,
	       f2.fid, f2.carrier_id, f2.flight_num, f2.origin_city, f2.dest_city, f2.actual_time
	FROM flights f1
	JOIN flights f2 ON f2.origin_city = f1.dest_city
	               AND f2.day_of_month = f1.day_of_month
	               AND f2.month_id = f1.month_id
	               AND f2.year = f1.year
	WHERE f1.origin_city = $1 AND f2.dest_city = $2 AND f1.day_of_month = $3
	  AND f1.actual_time IS NOT NULL AND f2.actual_time IS NOT NULL
	ORDER BY f1.actual_time + f2.actual_time ASC
	LIMIT $4`

func (r *PGFlightCatalogRepository) SearchItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int) ([]domain.Itinerary, error) {
	if max <= 0 {
		return []domain.Itinerary{}, nil
	}

	itineraries := make([]domain.Itinerary, 0, max)
	err := readTx(ctx, r.db, func(tx pgx.Tx) error {
		direct, err := r.directLegs(ctx, tx, origin, dest, dayOfMonth, max)
		if err != nil {
			return err
		}
		for _, leg := range direct {
			itineraries = append(itineraries, domain.Itinerary{Legs: []domain.FlightLeg{leg}})
		}

		remaining := max - len(itineraries)
		if directOnly || remaining <= 0 {
			return nil
		}

		oneStop, err := r.oneStopPairs(ctx, tx, origin, dest, dayOfMonth, remaining)
		if err != nil {
			return err
		}
		itineraries = append(itineraries, oneStop...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *PGFlightCatalogRepository) directLegs(ctx context.Context, tx pgx.Tx, origin, dest string, dayOfMonth, limit int) ([]domain.FlightLeg, error) {
	rows, err := tx.Query(ctx, directLegsSQL, origin, dest, dayOfMonth, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var legs []domain.FlightLeg
	for rows.Next() {
		var leg domain.FlightLeg
		if err := rows.Scan(&leg.FID, &leg.Year, &leg.Month, &leg.DayOfMonth, &leg.CarrierID, &leg.FlightNum, &leg.OriginCity, &leg.DestCity, &leg.ActualTime); err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

func (r *PGFlightCatalogRepository) oneStopPairs(ctx context.Context, tx pgx.Tx, origin, dest string, dayOfMonth, limit int) ([]domain.Itinerary, error) {
	rows, err := tx.Query(ctx, oneStopPairsSQL, origin, dest, dayOfMonth, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itineraries []domain.Itinerary
	for rows.Next() {
		var first, second domain.FlightLeg
		if err := rows.Scan(
			&first.FID, &first.Year, &first.Month, &first.DayOfMonth, &first.CarrierID, &first.FlightNum,
			&first.OriginCity, &first.DestCity, &first.ActualTime,
			&second.FID, &second.CarrierID, &second.FlightNum, &second.OriginCity, &second.DestCity, &second.ActualTime,
		); err != nil {
			return nil, err
		}
		second.Year = first.Year
		second.Month = first.Month
		second.DayOfMonth = first.DayOfMonth
		itineraries = append(itineraries, domain.Itinerary{Legs: []domain.FlightLeg{first, second}})
	}
	return itineraries, rows.Err()
}

var _ FlightCatalogRepository = (*PGFlightCatalogRepository)(nil)
