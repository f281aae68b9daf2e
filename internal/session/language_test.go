package session

import (
	"context"
	"sort"
	"testing"

	"halvi-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageDefault(t *testing.T) {
	p := NewLanguageProvider(storage.NewMemoryKV(), "en", quietLog())

	state := p.State(context.Background(), "s1")
	assert.Equal(t, "en", state.Language)
	assert.Equal(t, "ltr", state.Direction)
}

func TestSetLanguageUpdatesDirection(t *testing.T) {
	p := NewLanguageProvider(storage.NewMemoryKV(), "en", quietLog())
	ctx := context.Background()

	state, err := p.SetLanguage(ctx, "s1", "ar")
	require.NoError(t, err)
	assert.Equal(t, "ar", state.Language)
	assert.Equal(t, "rtl", state.Direction)

	// persisted across reads
	assert.Equal(t, "ar", p.State(ctx, "s1").Language)
}

func TestSetLanguageUnsupported(t *testing.T) {
	p := NewLanguageProvider(storage.NewMemoryKV(), "en", quietLog())
	_, err := p.SetLanguage(context.Background(), "s1", "xx")
	assert.Error(t, err)
}

func TestTranslate(t *testing.T) {
	p := NewLanguageProvider(storage.NewMemoryKV(), "en", quietLog())
	ctx := context.Background()

	assert.Equal(t, "Add to cart", p.Translate(ctx, "s1", "cart.add"))

	_, err := p.SetLanguage(ctx, "s1", "ar")
	require.NoError(t, err)
	assert.Equal(t, "أضف إلى السلة", p.Translate(ctx, "s1", "cart.add"))
}

func TestTranslateUnmappedKeyReturnsKey(t *testing.T) {
	p := NewLanguageProvider(storage.NewMemoryKV(), "en", quietLog())
	assert.Equal(t, "no.such.key", p.Translate(context.Background(), "s1", "no.such.key"))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "rtl", Direction("ar"))
	assert.Equal(t, "rtl", Direction("ur"))
	assert.Equal(t, "ltr", Direction("en"))
	assert.Equal(t, "ltr", Direction(""))
}

func TestLanguagesMatchTranslationTable(t *testing.T) {
	p := NewLanguageProvider(storage.NewMemoryKV(), "en", quietLog())

	langs := p.Languages()
	assert.Len(t, langs, len(translations))
	for _, lang := range langs {
		assert.Contains(t, translations, lang)
	}
	assert.True(t, sort.StringsAreSorted(langs))
}
