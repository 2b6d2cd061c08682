package auth

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Login(ctx context.Context, sess *session.Session, username, password string) (*domain.Customer, error)
}

type AuthService struct {
	customers repository.CustomerRepository
}

func NewAuthService(customers repository.CustomerRepository) *AuthService {
	return &AuthService{customers: customers}
}

// Login verifies the credential pair and binds the customer identity to the
// session. A failed lookup or a wrong password both come back as
// domain.ErrInvalidCredentials and leave the session as it was.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, username, password string) (*domain.Customer, error) {
	customer, err := s.customers.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sess.Authenticate(customer.CID, customer.Name)
	return customer, nil
}

// HashPassword produces the bcrypt hash stored in the customers table. Used
// by account provisioning, not by the login path.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var _ AuthUseCase = (*AuthService)(nil)
