package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerRepository looks up credentialed accounts.
type CustomerRepository interface {
	// GetByUsername returns the single customer with this username, or
	// domain.ErrInvalidCredentials if none exists.
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
}

type PGCustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &PGCustomerRepository{db: db}
}

func (r *PGCustomerRepository) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	var c domain.Customer
	// Read-only, but kept inside the same transaction discipline as the
	// mutating operations; a missed lookup rolls back instead of committing.
	err := readTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`SELECT cid, username, name, password_hash FROM customers WHERE username = $1`,
			username).Scan(&c.CID, &c.Username, &c.Name, &c.PasswordHash)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &c, nil
}

var _ CustomerRepository = (*PGCustomerRepository)(nil)
