package service

import (
	"context"

	"github.com/taskdesk/taskdesk-go/internal/model"
	"github.com/taskdesk/taskdesk-go/internal/repository"
)

// PreferenceService handles the display theme and the remembered task filter.
type PreferenceService struct {
	repo *repository.PreferenceRepository
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(repo *repository.PreferenceRepository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

// SetTheme validates and persists the theme.
func (s *PreferenceService) SetTheme(ctx context.Context, value string) (model.Theme, error) {
	theme := model.Theme(value)
	if !theme.Valid() {
		return "", ErrInvalidTheme
	}
	if err := s.repo.SetTheme(ctx, theme); err != nil {
		return "", err
	}
	return theme, nil
}

// SetFilter validates and persists the task filter.
func (s *PreferenceService) SetFilter(ctx context.Context, value string) (model.Filter, error) {
	filter := model.Filter(value)
	if !filter.Valid() {
		return "", ErrInvalidFilter
	}
	if err := s.repo.SetFilter(ctx, filter); err != nil {
		return "", err
	}
	return filter, nil
}

// Theme returns the current theme.
func (s *PreferenceService) Theme(ctx context.Context) (model.Theme, error) {
	return s.repo.Theme(ctx)
}

// Filter returns the current task filter.
func (s *PreferenceService) Filter(ctx context.Context) (model.Filter, error) {
	return s.repo.Filter(ctx)
}

// Get returns both preferences.
func (s *PreferenceService) Get(ctx context.Context) (model.Preferences, error) {
	theme, err := s.repo.Theme(ctx)
	if err != nil {
		return model.Preferences{}, err
	}
	filter, err := s.repo.Filter(ctx)
	if err != nil {
		return model.Preferences{}, err
	}
	return model.Preferences{Theme: theme, Filter: filter}, nil
}
