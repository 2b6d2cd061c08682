package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightres/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookRequest struct {
	ItineraryIndex int `json:"itinerary_index"`
}

type bookResponse struct {
	RID int64 `json:"rid"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.book)
	router.GET("/reservations", h.list)
	router.DELETE("/reservations/:rid", h.cancel)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Book(c.Request.Context(), currentSession(c), req.ItineraryIndex)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bookResponse{RID: res.RID})
}

func (h *BookingHandler) list(c *gin.Context) {
	reservations, err := h.service.Reservations(c.Request.Context(), currentSession(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	rid, err := strconv.ParseInt(c.Param("rid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rid"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), currentSession(c), rid); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
