package flights

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightCatalogRepository struct {
	mock.Mock
}

func (m *MockFlightCatalogRepository) SearchItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int) ([]domain.Itinerary, error) {
	args := m.Called(ctx, origin, dest, dayOfMonth, directOnly, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Itinerary), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int) ([]domain.Itinerary, error) {
	args := m.Called(ctx, origin, dest, dayOfMonth, directOnly, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Itinerary), args.Error(1)
}

func (m *MockCache) SetItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int, itineraries []domain.Itinerary) error {
	args := m.Called(ctx, origin, dest, dayOfMonth, directOnly, max, itineraries)
	return args.Error(0)
}

func seattleBoston(count int) []domain.Itinerary {
	itineraries := make([]domain.Itinerary, 0, count)
	for i := 0; i < count; i++ {
		itineraries = append(itineraries, domain.Itinerary{Legs: []domain.FlightLeg{
			{FID: int64(10 + i), DayOfMonth: 14, OriginCity: "Seattle WA", DestCity: "Boston MA", ActualTime: 300 + 10*i},
		}})
	}
	return itineraries
}

func TestFlightService_Search_PopulatesSessionCache(t *testing.T) {
	mockCatalog := &MockFlightCatalogRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockCatalog, mockCache)

	ctx := context.Background()
	sess := session.New()
	in := SearchInput{OriginCity: "Seattle WA", DestCity: "Boston MA", DayOfMonth: 14, DirectOnly: true, MaxItineraries: 10}
	found := seattleBoston(3)

	mockCache.On("GetItineraries", ctx, "Seattle WA", "Boston MA", 14, true, 10).Return(nil, nil).Once()
	mockCatalog.On("SearchItineraries", ctx, "Seattle WA", "Boston MA", 14, true, 10).Return(found, nil).Once()
	mockCache.On("SetItineraries", ctx, "Seattle WA", "Boston MA", 14, true, 10, found).Return(nil).Once()

	itineraries, err := service.Search(ctx, sess, in)

	assert.NoError(t, err)
	assert.Len(t, itineraries, 3)

	// Indices 1..3 in output order.
	for i := 1; i <= 3; i++ {
		itin, ok := sess.Itinerary(i)
		assert.True(t, ok)
		assert.Equal(t, itineraries[i-1], itin)
	}
	_, ok := sess.Itinerary(4)
	assert.False(t, ok)

	mockCatalog.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Search_CacheHitSkipsCatalog(t *testing.T) {
	mockCatalog := &MockFlightCatalogRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockCatalog, mockCache)

	ctx := context.Background()
	sess := session.New()
	in := SearchInput{OriginCity: "Seattle WA", DestCity: "Boston MA", DayOfMonth: 14, DirectOnly: false, MaxItineraries: 5}
	cached := seattleBoston(2)

	mockCache.On("GetItineraries", ctx, "Seattle WA", "Boston MA", 14, false, 5).Return(cached, nil).Once()

	itineraries, err := service.Search(ctx, sess, in)

	assert.NoError(t, err)
	assert.Equal(t, cached, itineraries)
	assert.True(t, sess.HasItineraries())
	mockCatalog.AssertNotCalled(t, "SearchItineraries")
}

func TestFlightService_Search_MaxZeroEmptiesCache(t *testing.T) {
	mockCatalog := &MockFlightCatalogRepository{}
	service := NewFlightService(mockCatalog, nil)

	ctx := context.Background()
	sess := session.New()
	sess.SetItineraries(seattleBoston(2))

	itineraries, err := service.Search(ctx, sess, SearchInput{OriginCity: "Seattle WA", DestCity: "Boston MA", DayOfMonth: 14, MaxItineraries: 0})

	assert.NoError(t, err)
	assert.Empty(t, itineraries)
	assert.False(t, sess.HasItineraries())
	mockCatalog.AssertNotCalled(t, "SearchItineraries")
}

func TestFlightService_Search_NoMatchesIsNotAnError(t *testing.T) {
	mockCatalog := &MockFlightCatalogRepository{}
	service := NewFlightService(mockCatalog, nil)

	ctx := context.Background()
	sess := session.New()
	sess.SetItineraries(seattleBoston(1))

	mockCatalog.On("SearchItineraries", ctx, "Nowhere ZZ", "Boston MA", 14, false, 10).Return([]domain.Itinerary{}, nil).Once()

	itineraries, err := service.Search(ctx, sess, SearchInput{OriginCity: "Nowhere ZZ", DestCity: "Boston MA", DayOfMonth: 14, MaxItineraries: 10})

	assert.NoError(t, err)
	assert.Empty(t, itineraries)
	// The previous result is gone; the cache was replaced, not merged.
	assert.False(t, sess.HasItineraries())
}

func TestFlightService_Search_ReplacesPreviousResult(t *testing.T) {
	mockCatalog := &MockFlightCatalogRepository{}
	service := NewFlightService(mockCatalog, nil)

	ctx := context.Background()
	sess := session.New()

	first := seattleBoston(3)
	second := []domain.Itinerary{{Legs: []domain.FlightLeg{{FID: 99, DayOfMonth: 20, OriginCity: "Seattle WA", DestCity: "Denver CO", ActualTime: 150}}}}

	mockCatalog.On("SearchItineraries", ctx, "Seattle WA", "Boston MA", 14, false, 10).Return(first, nil).Once()
	mockCatalog.On("SearchItineraries", ctx, "Seattle WA", "Denver CO", 20, false, 10).Return(second, nil).Once()

	_, err := service.Search(ctx, sess, SearchInput{OriginCity: "Seattle WA", DestCity: "Boston MA", DayOfMonth: 14, MaxItineraries: 10})
	assert.NoError(t, err)
	_, err = service.Search(ctx, sess, SearchInput{OriginCity: "Seattle WA", DestCity: "Denver CO", DayOfMonth: 20, MaxItineraries: 10})
	assert.NoError(t, err)

	itin, ok := sess.Itinerary(1)
	assert.True(t, ok)
	assert.Equal(t, int64(99), itin.Legs[0].FID)
	_, ok = sess.Itinerary(2)
	assert.False(t, ok)
}

func TestFlightService_Search_CatalogError(t *testing.T) {
	mockCatalog := &MockFlightCatalogRepository{}
	service := NewFlightService(mockCatalog, nil)

	ctx := context.Background()
	sess := session.New()
	sess.SetItineraries(seattleBoston(1))

	mockCatalog.On("SearchItineraries", ctx, "Seattle WA", "Boston MA", 14, false, 10).Return(nil, errors.New("store unavailable")).Once()

	itineraries, err := service.Search(ctx, sess, SearchInput{OriginCity: "Seattle WA", DestCity: "Boston MA", DayOfMonth: 14, MaxItineraries: 10})

	assert.Error(t, err)
	assert.Nil(t, itineraries)
	// A failed search leaves the previous cache alone.
	assert.True(t, sess.HasItineraries())
}
