package record

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medilink/records-api/internal/handler"
	"github.com/medilink/records-api/internal/middleware"
	"github.com/medilink/records-api/internal/model"
	"github.com/medilink/records-api/internal/service/history"
	"github.com/medilink/records-api/internal/service/record"
)

type Handler struct {
	service record.RecordService
	history history.Store
}

func NewHandler(service record.RecordService, historyStore history.Store) *Handler {
	return &Handler{
		service: service,
		history: historyStore,
	}
}

// RegisterHospitalRoutes wires the hospital-only surface: create, browse,
// dashboard stats. The auth middleware guarantees the hospital role.
func (h *Handler) RegisterHospitalRoutes(r *gin.RouterGroup) {
	records := r.Group("/records")
	{
		records.POST("", h.CreateRecord)
		records.GET("", h.ListRecords)
		records.GET("/stats", h.Stats)
		records.GET("/:id", h.GetRecord)
	}
}

// RegisterDoctorRoutes wires the doctor-only surface: exact unique-id
// search plus the recent-search history.
func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	search := r.Group("/search")
	{
		search.GET("", h.Search)
		search.GET("/recent", h.RecentSearches)
		search.DELETE("/recent", h.ClearRecentSearches)
	}
}

func (h *Handler) CreateRecord(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	var req model.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(handler.BindingErrorMessage(err)))
		return
	}

	created, err := h.service.CreateRecord(c.Request.Context(), session.UserID, &req)
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListRecords(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	records, err := h.service.ListRecords(c.Request.Context(), session.UserID, c.Query("q"))
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) GetRecord(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid record ID"))
		return
	}

	rec, err := h.service.GetRecord(c.Request.Context(), session.UserID, id)
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rec))
}

func (h *Handler) Stats(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	stats, err := h.service.Stats(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) Search(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	result, err := h.service.SearchByUniqueID(c.Request.Context(), c.Query("unique_id"))
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	// History is best-effort; a failure must not fail the search.
	if h.history != nil {
		if err := h.history.Record(c.Request.Context(), session.UserID, result.UniqueID); err != nil {
			log.Warn().Err(err).Msg("failed to record search history")
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) RecentSearches(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	ids := []string{}
	if h.history != nil {
		var err error
		ids, err = h.history.Recent(c.Request.Context(), session.UserID)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load search history")
			ids = []string{}
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(ids))
}

func (h *Handler) ClearRecentSearches(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	if h.history != nil {
		if err := h.history.Clear(c.Request.Context(), session.UserID); err != nil {
			c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(err.Error()))
			return
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "search history cleared"}))
}
