package flights

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/session"
)

type FlightUseCase interface {
	Search(ctx context.Context, sess *session.Session, in SearchInput) ([]domain.Itinerary, error)
}

// Cache is the shared search-result cache. A nil result with a nil error is
// a miss.
type Cache interface {
	GetItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int) ([]domain.Itinerary, error)
	SetItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int, itineraries []domain.Itinerary) error
}

type SearchInput struct {
	OriginCity     string `json:"origin_city"`
	DestCity       string `json:"dest_city"`
	DayOfMonth     int    `json:"day_of_month"`
	DirectOnly     bool   `json:"direct_only"`
	MaxItineraries int    `json:"max_itineraries"`
}

type FlightService struct {
	catalog repository.FlightCatalogRepository
	cache   Cache
}

func NewFlightService(catalog repository.FlightCatalogRepository, cache Cache) *FlightService {
	return &FlightService{catalog: catalog, cache: cache}
}

// Search resolves itineraries for the request and replaces the session's
// itinerary cache wholesale with the result, indexed 1..N. No matches is not
// an error; the session cache just ends up empty.
func (s *FlightService) Search(ctx context.Context, sess *session.Session, in SearchInput) ([]domain.Itinerary, error) {
	if in.MaxItineraries <= 0 {
		sess.SetItineraries(nil)
		return []domain.Itinerary{}, nil
	}

	if s.cache != nil {
		if cached, err := s.cache.GetItineraries(ctx, in.OriginCity, in.DestCity, in.DayOfMonth, in.DirectOnly, in.MaxItineraries); err == nil && cached != nil {
			sess.SetItineraries(cached)
			return cached, nil
		}
	}

	itineraries, err := s.catalog.SearchItineraries(ctx, in.OriginCity, in.DestCity, in.DayOfMonth, in.DirectOnly, in.MaxItineraries)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetItineraries(ctx, in.OriginCity, in.DestCity, in.DayOfMonth, in.DirectOnly, in.MaxItineraries, itineraries)
	}
	sess.SetItineraries(itineraries)
	return itineraries, nil
}

var _ FlightUseCase = (*FlightService)(nil)
