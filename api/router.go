package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/service/auth"
	"github.com/Domenick1991/flightres/internal/service/booking"
	"github.com/Domenick1991/flightres/internal/service/flights"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/gin-gonic/gin"
)

const sessionHeader = "X-Session-Token"

// NewRouter wires the caller-facing operations onto a gin engine. Every
// route except session creation resolves the caller's Session from the
// X-Session-Token header.
func NewRouter(store *session.Store, authSvc auth.AuthUseCase, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.Default()

	router.POST("/sessions", func(c *gin.Context) {
		token, _ := store.Create()
		c.JSON(http.StatusCreated, gin.H{"token": token})
	})

	authed := router.Group("/", sessionMiddleware(store))

	authHandler := NewAuthHandler(authSvc)
	authHandler.Register(authed)

	flightHandler := NewFlightHandler(flightSvc)
	flightHandler.Register(authed)

	bookingHandler := NewBookingHandler(bookingSvc)
	bookingHandler.Register(authed)

	return router
}

func sessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := store.Get(c.GetHeader(sessionHeader))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown session token"})
			return
		}
		c.Set("session", sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet("session").(*session.Session)
}

// statusFor maps the domain error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidItinerary), errors.Is(err, domain.ErrInvalidReservation):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFlightFull), errors.Is(err, domain.ErrDayConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoSearchPerformed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
