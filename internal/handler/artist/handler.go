package artist

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/service/artist"
	"github.com/inkstudio/booking-api/internal/service/schedule"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
	"github.com/inkstudio/booking-api/pkg/httputil"
)

type Handler struct {
	service     *artist.Service
	scheduleSvc *schedule.Service
}

func NewHandler(service *artist.Service, scheduleSvc *schedule.Service) *Handler {
	return &Handler{service: service, scheduleSvc: scheduleSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	artists := r.Group("/artists")
	{
		artists.POST("", h.CreateArtist)
		artists.GET("", h.ListArtists)
		artists.GET("/:id", h.GetArtist)
		artists.GET("/:id/availability", h.GetAvailability)
		artists.GET("/:id/working-hours", h.GetWorkingHours)
		artists.PUT("/:id/working-hours", h.ReplaceWorkingHours)
	}
}

func (h *Handler) CreateArtist(c *gin.Context) {
	var req model.CreateArtistRequest
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

func (h *Handler) ListArtists(c *gin.Context) {
	artists, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, artists)
}

func (h *Handler) GetArtist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid artist ID"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

// GetAvailability returns the artist's full-day slot grid for a date, in
// ticks of the optional `tick` query parameter (minutes, default 30).
func (h *Handler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid artist ID"))
		return
	}

	date, err := model.ParseDate(c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid or missing date, expected YYYY-MM-DD"))
		return
	}

	tick := schedule.DefaultTickMinutes
	if raw := c.Query("tick"); raw != "" {
		tick, err = strconv.Atoi(raw)
		if err != nil || tick <= 0 || tick > model.MinutesPerDay {
			httputil.RespondWithError(c, apperrors.Validation("", "invalid tick size"))
			return
		}
	}

	slots, err := h.scheduleSvc.GenerateSlots(c.Request.Context(), id, date, tick)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) GetWorkingHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid artist ID"))
		return
	}

	rules, err := h.scheduleSvc.ListWorkingHours(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rules)
}

func (h *Handler) ReplaceWorkingHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("", "invalid artist ID"))
		return
	}

	var req model.ReplaceWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(apperrors.ReasonInvalidRule, err.Error()))
		return
	}

	rules, err := h.scheduleSvc.ReplaceWorkingHours(c.Request.Context(), id, req.Rules)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rules)
}
