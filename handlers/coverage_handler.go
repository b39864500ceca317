package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"politiquensemble-live/models"
	"politiquensemble-live/services"

	"github.com/gin-gonic/gin"
)

type CoverageHandler struct {
	coverageService services.CoverageService
}

func NewCoverageHandler(coverageService services.CoverageService) *CoverageHandler {
	return &CoverageHandler{coverageService: coverageService}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, models.ErrCoverageNotLive):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func (h *CoverageHandler) CreateCoverage(c *gin.Context) {
	var req models.CreateCoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coverage, err := h.coverageService.CreateCoverage(req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, coverage)
}

func (h *CoverageHandler) GetLiveCoverages(c *gin.Context) {
	coverages, err := h.coverageService.GetLiveCoverages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, coverages)
}

func (h *CoverageHandler) GetAllCoverages(c *gin.Context) {
	coverages, err := h.coverageService.GetAllCoverages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, coverages)
}

func (h *CoverageHandler) GetCoverageBySlug(c *gin.Context) {
	coverage, err := h.coverageService.GetCoverageBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, coverage)
}

func (h *CoverageHandler) UpdateCoverage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coverage, err := h.coverageService.UpdateCoverage(id, req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, coverage)
}

func (h *CoverageHandler) DeleteCoverage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.coverageService.DeleteCoverage(id); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coverage deleted successfully"})
}

func (h *CoverageHandler) AssignEditor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AssignEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	editor, err := h.coverageService.AssignEditor(id, req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, editor)
}

func (h *CoverageHandler) RemoveEditor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.coverageService.RemoveEditor(id, userID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Editor removed successfully"})
}

func (h *CoverageHandler) GetEditors(c *gin.Context) {
	id, ok := parseIDParam(c, "slug")
	if !ok {
		return
	}

	editors, err := h.coverageService.GetEditors(id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, editors)
}
