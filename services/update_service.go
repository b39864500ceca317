package services

import (
	"errors"
	"sort"

	"politiquensemble-live/metrics"
	"politiquensemble-live/models"
	"politiquensemble-live/repositories"
	"politiquensemble-live/sanitize"

	"gorm.io/gorm"
)

type UpdateService interface {
	CreateUpdate(coverageID uint, req models.CreateUpdateRequest, authorID *uint) (*models.CoverageUpdate, error)
	GetUpdates(coverageID uint) ([]models.CoverageUpdate, error)
	DeleteUpdate(id uint) error
}

type updateService struct {
	updateRepo   repositories.UpdateRepository
	coverageRepo repositories.CoverageRepository
}

func NewUpdateService(updateRepo repositories.UpdateRepository, coverageRepo repositories.CoverageRepository) UpdateService {
	return &updateService{
		updateRepo:   updateRepo,
		coverageRepo: coverageRepo,
	}
}

func (s *updateService) CreateUpdate(coverageID uint, req models.CreateUpdateRequest, authorID *uint) (*models.CoverageUpdate, error) {
	if _, err := s.coverageRepo.GetByID(coverageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	update := &models.CoverageUpdate{
		CoverageID: coverageID,
		Content:    sanitize.HTML(req.Content),
		ImageURL:   req.ImageURL,
		Important:  req.Important,
		AuthorID:   authorID,
		Timestamp:  req.Timestamp,
	}

	if err := s.updateRepo.Create(update); err != nil {
		return nil, err
	}

	metrics.UpdatesPublished.Inc()
	return s.updateRepo.GetByID(update.ID)
}

// GetUpdates returns the full update set for a coverage, newest first.
// There is no pagination: a timeline is always served whole and clients
// re-sort anyway.
func (s *updateService) GetUpdates(coverageID uint) ([]models.CoverageUpdate, error) {
	if _, err := s.coverageRepo.GetByID(coverageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	updates, err := s.updateRepo.GetByCoverage(coverageID)
	if err != nil {
		return nil, err
	}
	SortUpdates(updates)
	return updates, nil
}

func (s *updateService) DeleteUpdate(id uint) error {
	if _, err := s.updateRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}
	if err := s.updateRepo.Delete(id); err != nil {
		return err
	}
	metrics.UpdatesDeleted.Inc()
	return nil
}

// SortUpdates orders a timeline for display: descending by effective time
// (explicit timestamp, else creation time), id ascending on ties.
func SortUpdates(updates []models.CoverageUpdate) {
	sort.Slice(updates, func(i, j int) bool {
		ti, tj := updates[i].EffectiveTime(), updates[j].EffectiveTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return updates[i].ID < updates[j].ID
	})
}
