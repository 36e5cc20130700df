package repository

import (
	"context"
	"log/slog"

	"github.com/taskdesk/taskdesk-go/internal/model"
)

// PreferenceRepository handles the theme and task filter scalars.
type PreferenceRepository struct {
	store Store
}

// NewPreferenceRepository creates a new PreferenceRepository.
func NewPreferenceRepository(store Store) *PreferenceRepository {
	return &PreferenceRepository{store: store}
}

// Theme returns the stored theme, falling back to light.
func (r *PreferenceRepository) Theme(ctx context.Context) (model.Theme, error) {
	v, ok, err := r.store.Get(ctx, KeyTheme)
	if err != nil || !ok {
		return model.ThemeLight, err
	}
	theme := model.Theme(v)
	if !theme.Valid() {
		slog.Warn("ignoring unknown stored theme", "value", v)
		return model.ThemeLight, nil
	}
	return theme, nil
}

// SetTheme persists the theme.
func (r *PreferenceRepository) SetTheme(ctx context.Context, theme model.Theme) error {
	return r.store.Set(ctx, KeyTheme, string(theme))
}

// Filter returns the stored task filter, falling back to all.
func (r *PreferenceRepository) Filter(ctx context.Context) (model.Filter, error) {
	v, ok, err := r.store.Get(ctx, KeyTaskFilter)
	if err != nil || !ok {
		return model.FilterAll, err
	}
	filter := model.Filter(v)
	if !filter.Valid() {
		slog.Warn("ignoring unknown stored task filter", "value", v)
		return model.FilterAll, nil
	}
	return filter, nil
}

// SetFilter persists the task filter.
func (r *PreferenceRepository) SetFilter(ctx context.Context, filter model.Filter) error {
	return r.store.Set(ctx, KeyTaskFilter, string(filter))
}
