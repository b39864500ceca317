package repositories

import (
	"politiquensemble-live/models"

	"gorm.io/gorm"
)

type UpdateRepository interface {
	Create(update *models.CoverageUpdate) error
	GetByID(id uint) (*models.CoverageUpdate, error)
	GetByCoverage(coverageID uint) ([]models.CoverageUpdate, error)
	Delete(id uint) error
}

type updateRepository struct {
	db *gorm.DB
}

func NewUpdateRepository(db *gorm.DB) UpdateRepository {
	return &updateRepository{db: db}
}

func (r *updateRepository) Create(update *models.CoverageUpdate) error {
	return r.db.Create(update).Error
}

func (r *updateRepository) GetByID(id uint) (*models.CoverageUpdate, error) {
	var update models.CoverageUpdate
	err := r.db.Preload("Author").First(&update, id).Error
	return &update, err
}

func (r *updateRepository) GetByCoverage(coverageID uint) ([]models.CoverageUpdate, error) {
	var updates []models.CoverageUpdate
	err := r.db.Where("coverage_id = ?", coverageID).
		Preload("Author").
		Find(&updates).Error
	return updates, err
}

func (r *updateRepository) Delete(id uint) error {
	return r.db.Delete(&models.CoverageUpdate{}, id).Error
}
