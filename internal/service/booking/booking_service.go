package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/kafka"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/session"
)

// bookRetries bounds how many times a booking transaction is re-run after a
// serialization conflict before giving up with ErrBookingFailed.
const bookRetries = 3

type BookingUseCase interface {
	Book(ctx context.Context, sess *session.Session, itineraryIndex int) (*domain.Reservation, error)
	Reservations(ctx context.Context, sess *session.Session) ([]domain.Reservation, error)
	Cancel(ctx context.Context, sess *session.Session, rid int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	reservations       repository.ReservationRepository
	producer           Producer
	reservationsTopic  string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(reservations repository.ReservationRepository, producer Producer, reservationsTopic string, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		reservations:      reservations,
		producer:          producer,
		reservationsTopic: reservationsTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book turns the cached itinerary at itineraryIndex into a durable
// reservation. Preconditions are checked before any transaction opens;
// business-rule violations inside the transaction come back typed after the
// store has rolled back, so no rejected booking is ever partially visible.
func (s *BookingService) Book(ctx context.Context, sess *session.Session, itineraryIndex int) (*domain.Reservation, error) {
	cid, _, ok := sess.Identity()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if !sess.HasItineraries() {
		return nil, domain.ErrNoSearchPerformed
	}
	itin, ok := sess.Itinerary(itineraryIndex)
	if !ok {
		return nil, domain.ErrInvalidItinerary
	}

	var res *domain.Reservation
	var err error
	for attempt := 1; ; attempt++ {
		res, err = s.reservations.Book(ctx, cid, itin)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrFlightFull) || errors.Is(err, domain.ErrDayConflict) {
			return nil, err
		}
		if repository.IsSerializationFailure(err) && attempt < bookRetries {
			continue
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrBookingFailed, err)
	}

	s.publish(ctx, "reservation_created", res)
	return res, nil
}

// Reservations lists the authenticated customer's reservations. An empty
// list is a valid answer, not an error.
func (s *BookingService) Reservations(ctx context.Context, sess *session.Session) ([]domain.Reservation, error) {
	cid, _, ok := sess.Identity()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	return s.reservations.ListByCustomer(ctx, cid)
}

// Cancel removes the customer's reservation rid. A rid the customer does not
// own cancels nothing and returns ErrInvalidReservation.
func (s *BookingService) Cancel(ctx context.Context, sess *session.Session, rid int64) error {
	cid, _, ok := sess.Identity()
	if !ok {
		return domain.ErrNotAuthenticated
	}

	if err := s.reservations.Cancel(ctx, cid, rid); err != nil {
		if errors.Is(err, domain.ErrInvalidReservation) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrCancelFailed, err)
	}

	s.publish(ctx, "reservation_cancelled", &domain.Reservation{RID: rid, CID: cid})
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, res *domain.Reservation) {
	if s.producer == nil || s.reservationsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:            eventType,
		RID:             res.RID,
		CID:             res.CID,
		FirstFlightFID:  res.FirstFlightFID,
		SecondFlightFID: res.SecondFlightFID,
		DayOfMonth:      res.DayOfMonth,
		OriginCity:      res.OriginCity,
		DestCity:        res.DestCity,
	}
	key := strconv.FormatInt(res.RID, 10)
	if err := s.producer.Publish(ctx, s.reservationsTopic, key, event); err != nil {
		log.Printf("WARNING: publish %s event for reservation %d: %v", eventType, res.RID, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: publish %s notification for reservation %d: %v", eventType, res.RID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
