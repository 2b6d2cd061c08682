package repository

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationRepository owns the reservation ledger. Book and Cancel each run
// as one atomic transaction; business-rule violations come back as the domain
// sentinel errors after the transaction has rolled back.
type ReservationRepository interface {
	// Book reserves the itinerary for the customer and returns the new
	// reservation. The whole check-then-insert sequence (per-leg capacity,
	// one-per-day, max rid) runs at serializable isolation; a concurrent
	// conflicting booking surfaces as a serialization failure the caller may
	// retry.
	Book(ctx context.Context, cid int64, itin domain.Itinerary) (*domain.Reservation, error)
	ListByCustomer(ctx context.Context, cid int64) ([]domain.Reservation, error)
	// Cancel deletes the customer's reservation rid, or returns
	// domain.ErrInvalidReservation if the customer owns no such reservation.
	Cancel(ctx context.Context, cid, rid int64) error
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

const reservationColumns = `rid, cid, first_flight_fid, second_flight_fid, first_carrier_id, second_carrier_id, day_of_month, origin_city, stop_city, dest_city, actual_time`

func (r *PGReservationRepository) Book(ctx context.Context, cid int64, itin domain.Itinerary) (*domain.Reservation, error) {
	var res domain.Reservation
	err := withTx(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(tx pgx.Tx) error {
		for _, leg := range itin.Legs {
			var taken int
			if err := tx.QueryRow(ctx,
				`SELECT count(*) FROM reservations WHERE first_flight_fid = $1 OR second_flight_fid = $1`,
				leg.FID).Scan(&taken); err != nil {
				return err
			}
			if taken >= domain.FlightCapacity {
				return domain.ErrFlightFull
			}
		}

		var booked bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM reservations WHERE cid = $1 AND day_of_month = $2)`,
			cid, itin.DayOfMonth()).Scan(&booked); err != nil {
			return err
		}
		if booked {
			return domain.ErrDayConflict
		}

		// max(rid)+1 is read in the same serializable transaction as the
		// insert, so two concurrent bookings cannot both commit the same rid.
		var maxRID int64
		if err := tx.QueryRow(ctx, `SELECT coalesce(max(rid), 0) FROM reservations`).Scan(&maxRID); err != nil {
			return err
		}

		res = domain.NewReservation(maxRID+1, cid, itin)
		_, err := tx.Exec(ctx,
			`INSERT INTO reservations (`+reservationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			res.RID, res.CID, res.FirstFlightFID, res.SecondFlightFID, res.FirstCarrierID,
			res.SecondCarrierID, res.DayOfMonth, res.OriginCity, res.StopCity, res.DestCity, res.ActualTime)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PGReservationRepository) ListByCustomer(ctx context.Context, cid int64) ([]domain.Reservation, error) {
	reservations := make([]domain.Reservation, 0)
	err := readTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT `+reservationColumns+` FROM reservations WHERE cid = $1 ORDER BY rid`, cid)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var res domain.Reservation
			if err := rows.Scan(&res.RID, &res.CID, &res.FirstFlightFID, &res.SecondFlightFID,
				&res.FirstCarrierID, &res.SecondCarrierID, &res.DayOfMonth, &res.OriginCity,
				&res.StopCity, &res.DestCity, &res.ActualTime); err != nil {
				return err
			}
			reservations = append(reservations, res)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *PGReservationRepository) Cancel(ctx context.Context, cid, rid int64) error {
	return withTx(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(tx pgx.Tx) error {
		var owned bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM reservations WHERE cid = $1 AND rid = $2)`,
			cid, rid).Scan(&owned); err != nil {
			return err
		}
		if !owned {
			return domain.ErrInvalidReservation
		}
		// The delete stays scoped to cid so a foreign rid can never remove
		// another customer's row.
		_, err := tx.Exec(ctx, `DELETE FROM reservations WHERE cid = $1 AND rid = $2`, cid, rid)
		return err
	})
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
