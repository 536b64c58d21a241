package taskboard

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/data/stores"
)

func TestThemeStore_DefaultsToLight(t *testing.T) {
	s := NewThemeStore(stores.NewMemoryKV(), zerolog.Nop())

	mode, err := s.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, styles.ModeLight, mode)
}

func TestThemeStore_SetAndToggle(t *testing.T) {
	ctx := context.Background()
	backing := stores.NewMemoryKV()
	s := NewThemeStore(backing, zerolog.Nop())

	require.NoError(t, s.SetTheme(ctx, styles.ModeDark))
	mode, err := s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, styles.ModeDark, mode)

	var raw string
	require.NoError(t, backing.Get(ctx, SlotTheme, &raw))
	assert.Equal(t, "dark", raw)

	mode, err = s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, styles.ModeLight, mode)

	assert.Error(t, s.SetTheme(ctx, styles.Mode("sepia")))
}

func TestThemeStore_InvalidValues(t *testing.T) {
	for name, raw := range map[string]string{
		"unknown name": `"sepia"`,
		"not a string": `{"mode":"dark"}`,
	} {
		t.Run(name, func(t *testing.T) {
			backing := stores.NewMemoryKV()
			backing.SetRaw(SlotTheme, []byte(raw))

			mode, err := NewThemeStore(backing, zerolog.Nop()).Theme(context.Background())
			require.NoError(t, err)
			assert.Equal(t, styles.ModeLight, mode)
		})
	}
}

func TestThemeStore_PersistHookRunsOnValidWrites(t *testing.T) {
	ctx := context.Background()
	s := NewThemeStore(stores.NewMemoryKV(), zerolog.Nop())

	calls := 0
	s.OnPersist(func() { calls++ })

	require.NoError(t, s.SetTheme(ctx, styles.ModeDark))
	_, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	require.Error(t, s.SetTheme(ctx, styles.Mode("sepia")))

	assert.Equal(t, 2, calls)
}
