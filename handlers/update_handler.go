package handlers

import (
	"net/http"

	"politiquensemble-live/models"
	"politiquensemble-live/services"

	"github.com/gin-gonic/gin"
)

type UpdateHandler struct {
	updateService services.UpdateService
}

func NewUpdateHandler(updateService services.UpdateService) *UpdateHandler {
	return &UpdateHandler{updateService: updateService}
}

func (h *UpdateHandler) CreateUpdate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var authorID *uint
	if v, exists := c.Get("user_id"); exists {
		uid := v.(uint)
		authorID = &uid
	}

	update, err := h.updateService.CreateUpdate(id, req, authorID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, update)
}

func (h *UpdateHandler) GetUpdates(c *gin.Context) {
	id, ok := parseIDParam(c, "slug")
	if !ok {
		return
	}

	updates, err := h.updateService.GetUpdates(id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updates)
}

func (h *UpdateHandler) DeleteUpdate(c *gin.Context) {
	id, ok := parseIDParam(c, "updateId")
	if !ok {
		return
	}

	if err := h.updateService.DeleteUpdate(id); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Update deleted successfully"})
}
