package services

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"politiquensemble-live/models"
	"politiquensemble-live/repositories"
	"politiquensemble-live/sanitize"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoverageService interface {
	CreateCoverage(req models.CreateCoverageRequest) (*models.LiveCoverage, error)
	GetCoverageBySlug(slug string) (*models.LiveCoverage, error)
	GetCoverage(id uint) (*models.LiveCoverage, error)
	GetLiveCoverages() ([]models.LiveCoverage, error)
	GetAllCoverages() ([]models.LiveCoverage, error)
	UpdateCoverage(id uint, req models.UpdateCoverageRequest) (*models.LiveCoverage, error)
	DeleteCoverage(id uint) error
	AssignEditor(coverageID uint, req models.AssignEditorRequest) (*models.CoverageEditor, error)
	RemoveEditor(coverageID, userID uint) error
	GetEditors(coverageID uint) ([]models.CoverageEditor, error)
}

type coverageService struct {
	coverageRepo repositories.CoverageRepository
	editorRepo   repositories.EditorRepository
	userRepo     repositories.UserRepository
}

func NewCoverageService(coverageRepo repositories.CoverageRepository, editorRepo repositories.EditorRepository, userRepo repositories.UserRepository) CoverageService {
	return &coverageService{
		coverageRepo: coverageRepo,
		editorRepo:   editorRepo,
		userRepo:     userRepo,
	}
}

func (s *coverageService) CreateCoverage(req models.CreateCoverageRequest) (*models.LiveCoverage, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}

	exists, err := s.coverageRepo.SlugExists(slug)
	if err != nil {
		return nil, err
	}
	if exists {
		slug = slug + "-" + uuid.NewString()[:8]
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	coverage := &models.LiveCoverage{
		Title:    req.Title,
		Slug:     slug,
		Subject:  req.Subject,
		Context:  sanitize.HTML(req.Context),
		ImageURL: req.ImageURL,
		Active:   active,
		EndDate:  req.EndDate,
	}

	if err := s.coverageRepo.Create(coverage); err != nil {
		return nil, err
	}

	return coverage, nil
}

func (s *coverageService) GetCoverageBySlug(slug string) (*models.LiveCoverage, error) {
	coverage, err := s.coverageRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return coverage, nil
}

func (s *coverageService) GetCoverage(id uint) (*models.LiveCoverage, error) {
	coverage, err := s.coverageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return coverage, nil
}

// GetLiveCoverages returns coverages visible on the public site. The active
// flag can lag behind an end date that has already passed, so both are
// checked here rather than in SQL.
func (s *coverageService) GetLiveCoverages() ([]models.LiveCoverage, error) {
	coverages, err := s.coverageRepo.GetActive()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	live := make([]models.LiveCoverage, 0, len(coverages))
	for _, c := range coverages {
		if c.IsLive(now) {
			live = append(live, c)
		}
	}
	return live, nil
}

func (s *coverageService) GetAllCoverages() ([]models.LiveCoverage, error) {
	return s.coverageRepo.GetAll()
}

func (s *coverageService) UpdateCoverage(id uint, req models.UpdateCoverageRequest) (*models.LiveCoverage, error) {
	coverage, err := s.GetCoverage(id)
	if err != nil {
		return nil, err
	}

	coverage.Title = req.Title
	coverage.Subject = req.Subject
	coverage.Context = sanitize.HTML(req.Context)
	coverage.ImageURL = req.ImageURL
	coverage.EndDate = req.EndDate
	if req.Active != nil {
		coverage.Active = *req.Active
	}

	if err := s.coverageRepo.Update(coverage); err != nil {
		return nil, err
	}
	return coverage, nil
}

func (s *coverageService) DeleteCoverage(id uint) error {
	if _, err := s.GetCoverage(id); err != nil {
		return err
	}
	return s.coverageRepo.Delete(id)
}

func (s *coverageService) AssignEditor(coverageID uint, req models.AssignEditorRequest) (*models.CoverageEditor, error) {
	if _, err := s.GetCoverage(coverageID); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	assigned, err := s.editorRepo.Exists(coverageID, req.UserID)
	if err != nil {
		return nil, err
	}
	if assigned {
		return nil, models.ErrAlreadyAssigned
	}

	editor := &models.CoverageEditor{
		CoverageID: coverageID,
		UserID:     req.UserID,
		Role:       req.Role,
	}
	if err := s.editorRepo.Create(editor); err != nil {
		return nil, err
	}

	editors, err := s.editorRepo.GetByCoverage(coverageID)
	if err != nil {
		return editor, nil
	}
	for i := range editors {
		if editors[i].ID == editor.ID {
			return &editors[i], nil
		}
	}
	return editor, nil
}

func (s *coverageService) RemoveEditor(coverageID, userID uint) error {
	assigned, err := s.editorRepo.Exists(coverageID, userID)
	if err != nil {
		return err
	}
	if !assigned {
		return models.ErrNotFound
	}
	return s.editorRepo.Delete(coverageID, userID)
}

func (s *coverageService) GetEditors(coverageID uint) ([]models.CoverageEditor, error) {
	if _, err := s.GetCoverage(coverageID); err != nil {
		return nil, err
	}
	return s.editorRepo.GetByCoverage(coverageID)
}

// slugify builds a URL key from a title: lowercase ASCII, runs of anything
// else collapsed to single dashes.
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
