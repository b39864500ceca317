package services

import (
	"testing"
	"time"

	"politiquensemble-live/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEditorRepo struct {
	editors map[uint]*models.CoverageEditor
	nextID  uint
}

func newFakeEditorRepo() *fakeEditorRepo {
	return &fakeEditorRepo{editors: map[uint]*models.CoverageEditor{}}
}

func (r *fakeEditorRepo) Create(e *models.CoverageEditor) error {
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	cp := *e
	r.editors[e.ID] = &cp
	return nil
}

func (r *fakeEditorRepo) GetByCoverage(coverageID uint) ([]models.CoverageEditor, error) {
	var out []models.CoverageEditor
	for _, e := range r.editors {
		if e.CoverageID == coverageID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEditorRepo) Exists(coverageID, userID uint) (bool, error) {
	for _, e := range r.editors {
		if e.CoverageID == coverageID && e.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEditorRepo) Delete(coverageID, userID uint) error {
	for id, e := range r.editors {
		if e.CoverageID == coverageID && e.UserID == userID {
			delete(r.editors, id)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(ids ...uint) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]*models.User{}}
	for _, id := range ids {
		r.users[id] = &models.User{ID: id, Username: "user", Role: models.RoleEditor}
	}
	return r
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func newCoverageService() (CoverageService, *fakeCoverageRepo, *fakeEditorRepo, *fakeUserRepo) {
	coverageRepo := newFakeCoverageRepo()
	editorRepo := newFakeEditorRepo()
	userRepo := newFakeUserRepo(1, 2)
	return NewCoverageService(coverageRepo, editorRepo, userRepo), coverageRepo, editorRepo, userRepo
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Soirée électorale 2026":  "soir-e-lectorale-2026",
		"Élections--Européennes!": "lections-europ-ennes",
		"debate":                  "debate",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}

func TestCreateCoverageGeneratesSlug(t *testing.T) {
	svc, _, _, _ := newCoverageService()

	c, err := svc.CreateCoverage(models.CreateCoverageRequest{Title: "Grand Débat", Subject: "Présidentielle"})
	require.NoError(t, err)
	assert.Equal(t, "grand-d-bat", c.Slug)
	assert.True(t, c.Active)
}

func TestCreateCoverageSlugCollisionGetsSuffix(t *testing.T) {
	svc, _, _, _ := newCoverageService()

	first, err := svc.CreateCoverage(models.CreateCoverageRequest{Title: "Débat", Subject: "A"})
	require.NoError(t, err)
	second, err := svc.CreateCoverage(models.CreateCoverageRequest{Title: "Débat", Subject: "B"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, first.Slug+"-")
}

func TestGetLiveCoveragesFiltersEnded(t *testing.T) {
	svc, repo, _, _ := newCoverageService()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	require.NoError(t, repo.Create(&models.LiveCoverage{Title: "En cours", Slug: "en-cours", Subject: "A", Active: true, EndDate: &future}))
	require.NoError(t, repo.Create(&models.LiveCoverage{Title: "Terminé", Slug: "termine", Subject: "B", Active: true, EndDate: &past}))
	require.NoError(t, repo.Create(&models.LiveCoverage{Title: "Désactivé", Slug: "desactive", Subject: "C", Active: false}))

	live, err := svc.GetLiveCoverages()
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "en-cours", live[0].Slug)
}

func TestAssignEditorTwiceFails(t *testing.T) {
	svc, repo, _, _ := newCoverageService()
	c := liveCoverage(t, repo)

	_, err := svc.AssignEditor(c.ID, models.AssignEditorRequest{UserID: 1, Role: "Reporter"})
	require.NoError(t, err)

	_, err = svc.AssignEditor(c.ID, models.AssignEditorRequest{UserID: 1})
	assert.ErrorIs(t, err, models.ErrAlreadyAssigned)
}

func TestAssignEditorUnknownUser(t *testing.T) {
	svc, repo, _, _ := newCoverageService()
	c := liveCoverage(t, repo)

	_, err := svc.AssignEditor(c.ID, models.AssignEditorRequest{UserID: 99})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemoveEditor(t *testing.T) {
	svc, repo, _, _ := newCoverageService()
	c := liveCoverage(t, repo)

	_, err := svc.AssignEditor(c.ID, models.AssignEditorRequest{UserID: 1, Role: "Fact-checker"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveEditor(c.ID, 1))
	assert.ErrorIs(t, svc.RemoveEditor(c.ID, 1), models.ErrNotFound)
}

func TestUpdateCoverageSanitizesContext(t *testing.T) {
	svc, repo, _, _ := newCoverageService()
	c := liveCoverage(t, repo)

	updated, err := svc.UpdateCoverage(c.ID, models.UpdateCoverageRequest{
		Title:   c.Title,
		Subject: c.Subject,
		Context: `<p>Contexte</p><script>alert("x")</script>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>Contexte</p>", updated.Context)
}
