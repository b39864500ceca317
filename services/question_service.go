package services

import (
	"errors"
	"time"

	"politiquensemble-live/metrics"
	"politiquensemble-live/models"
	"politiquensemble-live/repositories"
	"politiquensemble-live/sanitize"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuestionService interface {
	SubmitQuestion(coverageID uint, req models.SubmitQuestionRequest) (*models.CoverageQuestion, error)
	GetQuestions(coverageID uint) ([]models.CoverageQuestion, error)
	ApproveQuestion(id uint) (*models.CoverageQuestion, error)
	RejectQuestion(id uint) (*models.CoverageQuestion, error)
	AnswerQuestion(id uint, req models.AnswerQuestionRequest, moderatorID *uint) (*models.CoverageQuestion, *models.CoverageUpdate, error)
}

type questionService struct {
	questionRepo repositories.QuestionRepository
	coverageRepo repositories.CoverageRepository
	logger       *zap.Logger
}

func NewQuestionService(questionRepo repositories.QuestionRepository, coverageRepo repositories.CoverageRepository, logger *zap.Logger) QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &questionService{
		questionRepo: questionRepo,
		coverageRepo: coverageRepo,
		logger:       logger,
	}
}

// SubmitQuestion files an audience question against a live coverage.
// Questions always start pending; a closed coverage takes none.
func (s *questionService) SubmitQuestion(coverageID uint, req models.SubmitQuestionRequest) (*models.CoverageQuestion, error) {
	coverage, err := s.coverageRepo.GetByID(coverageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if !coverage.IsLive(time.Now()) {
		return nil, models.ErrCoverageNotLive
	}

	question := &models.CoverageQuestion{
		CoverageID: coverageID,
		Username:   req.Username,
		Content:    sanitize.HTML(req.Content),
		Status:     models.QuestionPending,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}

	metrics.QuestionsSubmitted.Inc()
	s.logger.Info("question submitted",
		zap.Uint("coverage_id", coverageID),
		zap.Uint("question_id", question.ID),
		zap.String("username", question.Username),
	)
	return question, nil
}

func (s *questionService) GetQuestions(coverageID uint) ([]models.CoverageQuestion, error) {
	if _, err := s.coverageRepo.GetByID(coverageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return s.questionRepo.GetByCoverage(coverageID)
}

func (s *questionService) ApproveQuestion(id uint) (*models.CoverageQuestion, error) {
	return s.moderate(id, models.QuestionApproved)
}

func (s *questionService) RejectQuestion(id uint) (*models.CoverageQuestion, error) {
	return s.moderate(id, models.QuestionRejected)
}

func (s *questionService) moderate(id uint, status models.QuestionStatus) (*models.CoverageQuestion, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if !question.CanModerate() {
		return nil, models.ErrInvalidTransition
	}

	question.Status = status
	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}

	metrics.QuestionsModerated.WithLabelValues(string(status)).Inc()
	s.logger.Info("question moderated",
		zap.Uint("question_id", question.ID),
		zap.String("status", string(status)),
	)
	return question, nil
}

// AnswerQuestion marks an approved question answered and publishes the
// moderator's reply as a new update in the same coverage. The two writes
// share one transaction: a failed update creation leaves the question
// unanswered.
func (s *questionService) AnswerQuestion(id uint, req models.AnswerQuestionRequest, moderatorID *uint) (*models.CoverageQuestion, *models.CoverageUpdate, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrNotFound
		}
		return nil, nil, err
	}

	if !question.CanAnswer() {
		return nil, nil, models.ErrInvalidTransition
	}

	question.Answered = true
	update := &models.CoverageUpdate{
		CoverageID: question.CoverageID,
		Content:    sanitize.HTML(req.Content),
		Important:  req.Important,
		AuthorID:   moderatorID,
	}

	if err := s.questionRepo.AnswerWithUpdate(question, update); err != nil {
		question.Answered = false
		return nil, nil, err
	}

	metrics.QuestionsAnswered.Inc()
	metrics.UpdatesPublished.Inc()
	s.logger.Info("question answered",
		zap.Uint("question_id", question.ID),
		zap.Uint("coverage_id", question.CoverageID),
		zap.Uint("update_id", update.ID),
		zap.Bool("important", update.Important),
	)
	return question, update, nil
}
