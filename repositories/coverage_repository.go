package repositories

import (
	"politiquensemble-live/models"

	"gorm.io/gorm"
)

type CoverageRepository interface {
	Create(coverage *models.LiveCoverage) error
	GetByID(id uint) (*models.LiveCoverage, error)
	GetBySlug(slug string) (*models.LiveCoverage, error)
	GetAll() ([]models.LiveCoverage, error)
	GetActive() ([]models.LiveCoverage, error)
	Update(coverage *models.LiveCoverage) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
}

type coverageRepository struct {
	db *gorm.DB
}

func NewCoverageRepository(db *gorm.DB) CoverageRepository {
	return &coverageRepository{db: db}
}

func (r *coverageRepository) Create(coverage *models.LiveCoverage) error {
	return r.db.Create(coverage).Error
}

func (r *coverageRepository) GetByID(id uint) (*models.LiveCoverage, error) {
	var coverage models.LiveCoverage
	err := r.db.First(&coverage, id).Error
	return &coverage, err
}

func (r *coverageRepository) GetBySlug(slug string) (*models.LiveCoverage, error) {
	var coverage models.LiveCoverage
	err := r.db.Where("slug = ?", slug).First(&coverage).Error
	return &coverage, err
}

func (r *coverageRepository) GetAll() ([]models.LiveCoverage, error) {
	var coverages []models.LiveCoverage
	err := r.db.Order("created_at desc").Find(&coverages).Error
	return coverages, err
}

func (r *coverageRepository) GetActive() ([]models.LiveCoverage, error) {
	var coverages []models.LiveCoverage
	err := r.db.Where("active = ?", true).Order("created_at desc").Find(&coverages).Error
	return coverages, err
}

func (r *coverageRepository) Update(coverage *models.LiveCoverage) error {
	return r.db.Save(coverage).Error
}

// Delete removes the coverage and everything it owns. Updates, editor
// assignments and questions never outlive their coverage.
func (r *coverageRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("coverage_id = ?", id).Delete(&models.CoverageUpdate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("coverage_id = ?", id).Delete(&models.CoverageEditor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("coverage_id = ?", id).Delete(&models.CoverageQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.LiveCoverage{}, id).Error
	})
}

func (r *coverageRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.LiveCoverage{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
