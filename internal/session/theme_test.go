package session

import (
	"context"
	"testing"

	"halvi-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeDefault(t *testing.T) {
	p := NewThemeProvider(storage.NewMemoryKV(), quietLog())

	state := p.State(context.Background(), "s1")
	assert.Equal(t, "", state.Theme)
	assert.Equal(t, ThemeLight, state.Active)
}

func TestThemeSystemPreferenceOverridesDefault(t *testing.T) {
	p := NewThemeProvider(storage.NewMemoryKV(), quietLog())
	ctx := context.Background()

	require.NoError(t, p.ReportSystemTheme(ctx, "s1", ThemeDark))
	state := p.State(ctx, "s1")
	assert.Equal(t, ThemeDark, state.SystemTheme)
	assert.Equal(t, ThemeDark, state.Active)
}

func TestThemeSystemPreferencePersisted(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()

	p := NewThemeProvider(kv, quietLog())
	require.NoError(t, p.ReportSystemTheme(ctx, "s1", ThemeDark))

	// a fresh provider over the same store sees the reported preference
	p = NewThemeProvider(kv, quietLog())
	state := p.State(ctx, "s1")
	assert.Equal(t, ThemeDark, state.SystemTheme)
	assert.Equal(t, ThemeDark, state.Active)
}

func TestThemeSystemReportRejectsUnknownValue(t *testing.T) {
	p := NewThemeProvider(storage.NewMemoryKV(), quietLog())
	assert.Error(t, p.ReportSystemTheme(context.Background(), "s1", "sepia"))
}

func TestThemeExplicitChoiceOverridesSystem(t *testing.T) {
	p := NewThemeProvider(storage.NewMemoryKV(), quietLog())
	ctx := context.Background()

	require.NoError(t, p.ReportSystemTheme(ctx, "s1", ThemeDark))
	state, err := p.SetTheme(ctx, "s1", ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, state.Active)

	// a later system change never overrides the explicit choice
	require.NoError(t, p.ReportSystemTheme(ctx, "s1", ThemeDark))
	state = p.State(ctx, "s1")
	assert.Equal(t, ThemeDark, state.SystemTheme)
	assert.Equal(t, ThemeLight, state.Active)
}

func TestThemeClearFallsBackToSystem(t *testing.T) {
	p := NewThemeProvider(storage.NewMemoryKV(), quietLog())
	ctx := context.Background()

	require.NoError(t, p.ReportSystemTheme(ctx, "s1", ThemeDark))
	_, err := p.SetTheme(ctx, "s1", ThemeLight)
	require.NoError(t, err)

	state, err := p.ClearTheme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "", state.Theme)
	assert.Equal(t, ThemeDark, state.Active)
}

func TestThemeRejectsUnknownValue(t *testing.T) {
	p := NewThemeProvider(storage.NewMemoryKV(), quietLog())
	_, err := p.SetTheme(context.Background(), "s1", "sepia")
	assert.Error(t, err)
}

func TestThemeCorruptStoredValueIgnored(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), storage.SessionKey(storage.KeyTheme, "s1"), []byte("sepia")))
	p := NewThemeProvider(kv, quietLog())

	state := p.State(context.Background(), "s1")
	assert.Equal(t, "", state.Theme)
	assert.Equal(t, ThemeLight, state.Active)
}
