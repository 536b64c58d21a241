package taskboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskboard/internal/core/kv"
	"github.com/colonyops/taskboard/internal/core/styles"
)

// ThemeStore persists the light/dark preference in the theme slot.
type ThemeStore struct {
	slot      *kv.Slot[string]
	log       zerolog.Logger
	onPersist func()
}

// NewThemeStore creates a ThemeStore over store.
func NewThemeStore(store kv.KV, log zerolog.Logger) *ThemeStore {
	return &ThemeStore{slot: kv.NewSlot[string](store, SlotTheme), log: log}
}

// OnPersist replaces the hook run right before each slot write.
func (s *ThemeStore) OnPersist(fn func()) {
	s.onPersist = fn
}

// Theme returns the stored mode, or the default when absent or invalid.
func (s *ThemeStore) Theme(ctx context.Context) (styles.Mode, error) {
	v, found, err := s.slot.Load(ctx)
	if err != nil {
		raw, _, rawErr := s.slot.Raw(ctx)
		if rawErr != nil {
			return styles.DefaultMode, fmt.Errorf("load theme: %w", err)
		}
		s.log.Warn().Ctx(ctx).Str("value", string(raw)).Msg("ignoring unreadable theme")
		return styles.DefaultMode, nil
	}
	if !found {
		return styles.DefaultMode, nil
	}

	mode, ok := styles.ParseMode(v)
	if !ok {
		s.log.Warn().Ctx(ctx).Str("value", v).Msg("ignoring unknown theme")
	}
	return mode, nil
}

// SetTheme persists mode.
func (s *ThemeStore) SetTheme(ctx context.Context, mode styles.Mode) error {
	if _, ok := styles.ParseMode(string(mode)); !ok {
		return fmt.Errorf("unknown theme %q", mode)
	}
	if s.onPersist != nil {
		s.onPersist()
	}
	if err := s.slot.Save(ctx, string(mode)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// ToggleTheme flips and persists the stored mode, returning the new one.
func (s *ThemeStore) ToggleTheme(ctx context.Context) (styles.Mode, error) {
	cur, err := s.Theme(ctx)
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	return next, s.SetTheme(ctx, next)
}
