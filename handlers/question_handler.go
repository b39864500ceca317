package handlers

import (
	"net/http"

	"politiquensemble-live/models"
	"politiquensemble-live/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) SubmitQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "slug")
	if !ok {
		return
	}

	var req models.SubmitQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.SubmitQuestion(id, req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	questions, err := h.questionService.GetQuestions(id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) UpdateQuestionStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateQuestionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var question *models.CoverageQuestion
	var err error
	if req.Status == models.QuestionApproved {
		question, err = h.questionService.ApproveQuestion(id)
	} else {
		question, err = h.questionService.RejectQuestion(id)
	}
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) AnswerQuestion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var moderatorID *uint
	if v, exists := c.Get("user_id"); exists {
		uid := v.(uint)
		moderatorID = &uid
	}

	question, update, err := h.questionService.AnswerQuestion(id, req, moderatorID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question": question,
		"update":   update,
	})
}
