package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/service/booking"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
	"github.com/inkstudio/booking-api/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.PATCH("/:id/status", h.ChangeStatus)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", err.Error()))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid booking ID"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) ListBookings(c *gin.Context) {
	filters := &model.BookingFilters{}

	if raw := c.Query("artist_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("", "invalid artist ID"))
			return
		}
		filters.ArtistID = id
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("", "invalid customer ID"))
			return
		}
		filters.CustomerID = id
	}
	if raw := c.Query("status"); raw != "" {
		status := model.BookingStatus(raw)
		if !status.Valid() {
			httputil.RespondWithError(c, apperrors.Validation("", "invalid status"))
			return
		}
		filters.Status = status
	}
	if raw := c.Query("date"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("", "invalid date, expected YYYY-MM-DD"))
			return
		}
		filters.Date = &date
	}

	bookings, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, bookings)
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid booking ID"))
		return
	}

	var req model.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid booking ID"))
		return
	}

	var req model.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", err.Error()))
		return
	}

	updated, err := h.service.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid booking ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
