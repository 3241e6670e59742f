package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/alerthe/alerthe-server/internal/domain/models"
	"github.com/alerthe/alerthe-server/internal/service/incidents"
)

// IncidentHandler handles citizen submission, listing and admin deletion.
type IncidentHandler struct {
	svc    *incidents.Service
	logger *zap.Logger
}

// NewIncidentHandler constructs the HTTP handler adapter.
func NewIncidentHandler(svc *incidents.Service, logger *zap.Logger) *IncidentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IncidentHandler{svc: svc, logger: logger}
}

// Submit accepts a new citizen report.
func (h *IncidentHandler) Submit(c *gin.Context) {
	var req models.NewIncident
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid incident payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, incidents.ErrInvalidSubmission) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed storing incident", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store incident"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// List returns every incident for the map client.
func (h *IncidentHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing incidents", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load incidents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"incidents": records, "count": len(records)})
}

// Delete removes one incident by id.
func (h *IncidentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		h.logger.Error("failed deleting incident", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete incident"})
		return
	}

	c.Status(http.StatusNoContent)
}
