package repositories

import (
	"politiquensemble-live/models"

	"gorm.io/gorm"
)

type EditorRepository interface {
	Create(editor *models.CoverageEditor) error
	GetByCoverage(coverageID uint) ([]models.CoverageEditor, error)
	Exists(coverageID, userID uint) (bool, error)
	Delete(coverageID, userID uint) error
}

type editorRepository struct {
	db *gorm.DB
}

func NewEditorRepository(db *gorm.DB) EditorRepository {
	return &editorRepository{db: db}
}

func (r *editorRepository) Create(editor *models.CoverageEditor) error {
	return r.db.Create(editor).Error
}

func (r *editorRepository) GetByCoverage(coverageID uint) ([]models.CoverageEditor, error) {
	var editors []models.CoverageEditor
	err := r.db.Where("coverage_id = ?", coverageID).
		Preload("User").
		Order("created_at asc").
		Find(&editors).Error
	return editors, err
}

func (r *editorRepository) Exists(coverageID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CoverageEditor{}).
		Where("coverage_id = ? AND user_id = ?", coverageID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *editorRepository) Delete(coverageID, userID uint) error {
	return r.db.Where("coverage_id = ? AND user_id = ?", coverageID, userID).
		Delete(&models.CoverageEditor{}).Error
}
