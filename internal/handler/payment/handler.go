package payment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/service/payment"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
	"github.com/inkstudio/booking-api/pkg/httputil"
)

type Handler struct {
	service *payment.Service
}

func NewHandler(service *payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings/:id")
	{
		bookings.POST("/payments", h.RecordPayment)
		bookings.GET("/payments", h.ListPayments)
		bookings.GET("/balance", h.GetBalance)
	}
}

func (h *Handler) RecordPayment(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid booking ID"))
		return
	}

	var req model.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", err.Error()))
		return
	}

	recorded, err := h.service.Record(c.Request.Context(), bookingID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, recorded)
}

func (h *Handler) ListPayments(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid booking ID"))
		return
	}

	payments, err := h.service.ListForBooking(c.Request.Context(), bookingID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, payments)
}

func (h *Handler) GetBalance(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid booking ID"))
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), bookingID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, balance)
}
