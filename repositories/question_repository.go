package repositories

import (
	"politiquensemble-live/models"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *models.CoverageQuestion) error
	GetByID(id uint) (*models.CoverageQuestion, error)
	GetByCoverage(coverageID uint) ([]models.CoverageQuestion, error)
	Update(question *models.CoverageQuestion) error
	AnswerWithUpdate(question *models.CoverageQuestion, update *models.CoverageUpdate) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *models.CoverageQuestion) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) GetByID(id uint) (*models.CoverageQuestion, error) {
	var question models.CoverageQuestion
	err := r.db.First(&question, id).Error
	return &question, err
}

func (r *questionRepository) GetByCoverage(coverageID uint) ([]models.CoverageQuestion, error) {
	var questions []models.CoverageQuestion
	err := r.db.Where("coverage_id = ?", coverageID).
		Order("created_at asc").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *models.CoverageQuestion) error {
	return r.db.Save(question).Error
}

// AnswerWithUpdate persists the answered question and the update it
// publishes in a single transaction. Either both land or neither does.
func (r *questionRepository) AnswerWithUpdate(question *models.CoverageQuestion, update *models.CoverageUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		return tx.Create(update).Error
	})
}
