package services

import (
	"testing"
	"time"

	"politiquensemble-live/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUpdateRepo struct {
	updates map[uint]*models.CoverageUpdate
	nextID  uint
}

func newFakeUpdateRepo() *fakeUpdateRepo {
	return &fakeUpdateRepo{updates: map[uint]*models.CoverageUpdate{}}
}

func (r *fakeUpdateRepo) Create(u *models.CoverageUpdate) error {
	r.nextID++
	u.ID = r.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	r.updates[u.ID] = &cp
	return nil
}

func (r *fakeUpdateRepo) GetByID(id uint) (*models.CoverageUpdate, error) {
	u, ok := r.updates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUpdateRepo) GetByCoverage(coverageID uint) ([]models.CoverageUpdate, error) {
	var out []models.CoverageUpdate
	for _, u := range r.updates {
		if u.CoverageID == coverageID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUpdateRepo) Delete(id uint) error {
	delete(r.updates, id)
	return nil
}

func TestSortUpdatesNewestFirst(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	t2 := t1.Add(10 * time.Minute)

	early := models.CoverageUpdate{ID: 1, Content: "premier", Timestamp: &t1}
	late := models.CoverageUpdate{ID: 2, Content: "second", Timestamp: &t2}

	// Insertion order must not matter.
	for _, updates := range [][]models.CoverageUpdate{{early, late}, {late, early}} {
		SortUpdates(updates)
		require.Len(t, updates, 2)
		assert.Equal(t, "second", updates[0].Content)
		assert.Equal(t, "premier", updates[1].Content)
	}
}

func TestSortUpdatesFallsBackToCreatedAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	explicit := base.Add(time.Hour)

	updates := []models.CoverageUpdate{
		{ID: 1, CreatedAt: base.Add(30 * time.Minute)},
		{ID: 2, CreatedAt: base, Timestamp: &explicit},
	}
	SortUpdates(updates)
	assert.Equal(t, uint(2), updates[0].ID)
}

func TestSortUpdatesTieBreaksByID(t *testing.T) {
	ts := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	updates := []models.CoverageUpdate{
		{ID: 3, Timestamp: &ts},
		{ID: 1, Timestamp: &ts},
		{ID: 2, Timestamp: &ts},
	}
	SortUpdates(updates)
	assert.Equal(t, []uint{1, 2, 3}, []uint{updates[0].ID, updates[1].ID, updates[2].ID})
}

func TestSortUpdatesIdempotent(t *testing.T) {
	ts := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	later := ts.Add(time.Minute)
	updates := []models.CoverageUpdate{
		{ID: 2, Timestamp: &ts},
		{ID: 1, Timestamp: &later},
		{ID: 3, Timestamp: &ts},
	}
	SortUpdates(updates)
	once := make([]uint, len(updates))
	for i, u := range updates {
		once[i] = u.ID
	}
	SortUpdates(updates)
	twice := make([]uint, len(updates))
	for i, u := range updates {
		twice[i] = u.ID
	}
	assert.Equal(t, once, twice)
}

func TestCreateUpdateSanitizesContent(t *testing.T) {
	coverageRepo := newFakeCoverageRepo()
	updateRepo := newFakeUpdateRepo()
	svc := NewUpdateService(updateRepo, coverageRepo)

	c := liveCoverage(t, coverageRepo)

	update, err := svc.CreateUpdate(c.ID, models.CreateUpdateRequest{
		Content:   `<p>Résultats</p><script>alert("x")</script>`,
		Important: true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>Résultats</p>", update.Content)
	assert.True(t, update.Important)
}

func TestCreateUpdateUnknownCoverage(t *testing.T) {
	svc := NewUpdateService(newFakeUpdateRepo(), newFakeCoverageRepo())

	_, err := svc.CreateUpdate(99, models.CreateUpdateRequest{Content: "x"}, nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetUpdatesReturnsSorted(t *testing.T) {
	coverageRepo := newFakeCoverageRepo()
	updateRepo := newFakeUpdateRepo()
	svc := NewUpdateService(updateRepo, coverageRepo)

	c := liveCoverage(t, coverageRepo)

	t1 := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Minute)
	require.NoError(t, updateRepo.Create(&models.CoverageUpdate{CoverageID: c.ID, Content: "ancien", Timestamp: &t1}))
	require.NoError(t, updateRepo.Create(&models.CoverageUpdate{CoverageID: c.ID, Content: "récent", Timestamp: &t2}))

	updates, err := svc.GetUpdates(c.ID)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "récent", updates[0].Content)
	assert.Equal(t, "ancien", updates[1].Content)
}

func TestDeleteUpdate(t *testing.T) {
	coverageRepo := newFakeCoverageRepo()
	updateRepo := newFakeUpdateRepo()
	svc := NewUpdateService(updateRepo, coverageRepo)

	c := liveCoverage(t, coverageRepo)
	update, err := svc.CreateUpdate(c.ID, models.CreateUpdateRequest{Content: "à supprimer"}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUpdate(update.ID))
	assert.ErrorIs(t, svc.DeleteUpdate(update.ID), models.ErrNotFound)
}
