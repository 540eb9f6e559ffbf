package customer

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/service/customer"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
	"github.com/inkstudio/booking-api/pkg/httputil"
)

type Handler struct {
	service *customer.Service
}

func NewHandler(service *customer.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
	}
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req model.CreateCustomerRequest
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

func (h *Handler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid customer ID"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}
