package client

import (
	"context"
	"sync"

	"politiquensemble-live/feed"
)

// CoverageSource binds a Client to one coverage slug. The numeric id the
// update and editor endpoints want is resolved from the slug on first
// use and cached.
type CoverageSource struct {
	client *Client
	slug   string

	mu sync.Mutex
	id uint
}

func NewCoverageSource(c *Client, slug string) *CoverageSource {
	return &CoverageSource{client: c, slug: slug}
}

func (s *CoverageSource) Coverage(ctx context.Context) (*Coverage, error) {
	coverage, err := s.client.Coverage(ctx, s.slug)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.id = coverage.ID
	s.mu.Unlock()
	return coverage, nil
}

func (s *CoverageSource) Updates(ctx context.Context) ([]feed.Update, error) {
	id, err := s.resolveID(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Updates(ctx, id)
}

func (s *CoverageSource) Editors(ctx context.Context) ([]Editor, error) {
	id, err := s.resolveID(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Editors(ctx, id)
}

func (s *CoverageSource) resolveID(ctx context.Context) (uint, error) {
	s.mu.Lock()
	id := s.id
	s.mu.Unlock()
	if id != 0 {
		return id, nil
	}
	coverage, err := s.Coverage(ctx)
	if err != nil {
		return 0, err
	}
	return coverage.ID, nil
}
