package api

import (
	"net/http"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type itineraryResponse struct {
	Index      int                `json:"index"`
	DayOfMonth int                `json:"day_of_month"`
	OriginCity string             `json:"origin_city"`
	StopCity   string             `json:"stop_city,omitempty"`
	DestCity   string             `json:"dest_city"`
	TotalTime  int                `json:"total_time"`
	Legs       []domain.FlightLeg `json:"legs"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/search", h.search)
}

func (h *FlightHandler) search(c *gin.Context) {
	var req flights.SearchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	itineraries, err := h.service.Search(c.Request.Context(), currentSession(c), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]itineraryResponse, 0, len(itineraries))
	for i, itin := range itineraries {
		out = append(out, itineraryResponse{
			Index:      i + 1,
			DayOfMonth: itin.DayOfMonth(),
			OriginCity: itin.OriginCity(),
			StopCity:   itin.StopCity(),
			DestCity:   itin.DestCity(),
			TotalTime:  itin.TotalTime(),
			Legs:       itin.Legs,
		})
	}
	c.JSON(http.StatusOK, out)
}
