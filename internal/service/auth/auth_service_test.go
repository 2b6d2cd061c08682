package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := &MockCustomerRepository{}
	service := NewAuthService(mockRepo)

	hash, err := HashPassword("hunter2")
	assert.NoError(t, err)

	ctx := context.Background()
	sess := session.New()
	customer := &domain.Customer{CID: 7, Username: "alice", Name: "Alice", PasswordHash: hash}

	mockRepo.On("GetByUsername", ctx, "alice").Return(customer, nil).Once()

	got, err := service.Login(ctx, sess, "alice", "hunter2")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), got.CID)

	cid, name, ok := sess.Identity()
	assert.True(t, ok)
	assert.Equal(t, int64(7), cid)
	assert.Equal(t, "Alice", name)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := &MockCustomerRepository{}
	service := NewAuthService(mockRepo)

	hash, err := HashPassword("hunter2")
	assert.NoError(t, err)

	ctx := context.Background()
	sess := session.New()
	customer := &domain.Customer{CID: 7, Username: "alice", Name: "Alice", PasswordHash: hash}

	mockRepo.On("GetByUsername", ctx, "alice").Return(customer, nil).Once()

	got, err := service.Login(ctx, sess, "alice", "wrong")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// A failed login leaves the session unauthenticated.
	_, _, ok := sess.Identity()
	assert.False(t, ok)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockRepo := &MockCustomerRepository{}
	service := NewAuthService(mockRepo)

	ctx := context.Background()
	sess := session.New()

	mockRepo.On("GetByUsername", ctx, "nobody").Return(nil, domain.ErrInvalidCredentials).Once()

	got, err := service.Login(ctx, sess, "nobody", "hunter2")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, ok := sess.Identity()
	assert.False(t, ok)
}

func TestAuthService_Login_StoreError(t *testing.T) {
	mockRepo := &MockCustomerRepository{}
	service := NewAuthService(mockRepo)

	ctx := context.Background()
	sess := session.New()
	storeErr := errors.New("store unavailable")

	mockRepo.On("GetByUsername", ctx, "alice").Return(nil, storeErr).Once()

	got, err := service.Login(ctx, sess, "alice", "hunter2")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, storeErr)
}

func TestAuthService_Login_ReplacesIdentity(t *testing.T) {
	mockRepo := &MockCustomerRepository{}
	service := NewAuthService(mockRepo)

	hash, err := HashPassword("hunter2")
	assert.NoError(t, err)

	ctx := context.Background()
	sess := session.New()
	sess.Authenticate(3, "Bob")

	customer := &domain.Customer{CID: 7, Username: "alice", Name: "Alice", PasswordHash: hash}
	mockRepo.On("GetByUsername", ctx, "alice").Return(customer, nil).Once()

	_, err = service.Login(ctx, sess, "alice", "hunter2")
	assert.NoError(t, err)

	cid, _, ok := sess.Identity()
	assert.True(t, ok)
	assert.Equal(t, int64(7), cid)
}
