package session

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"halvi-backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// LanguageState is returned after reads and switches. Direction is the
// document text direction the client must apply ("ltr" or "rtl").
type LanguageState struct {
	Language  string `json:"language"`
	Direction string `json:"direction"`
}

// LanguageProvider holds the session's active language and the static
// translation table.
type LanguageProvider struct {
	kv              storage.KV
	defaultLanguage string
	log             *logrus.Logger
}

func NewLanguageProvider(kv storage.KV, defaultLanguage string, log *logrus.Logger) *LanguageProvider {
	if _, ok := translations[defaultLanguage]; !ok {
		defaultLanguage = "en"
	}
	return &LanguageProvider{kv: kv, defaultLanguage: defaultLanguage, log: log}
}

// State returns the session's active language and direction.
func (p *LanguageProvider) State(ctx context.Context, sessionID string) LanguageState {
	lang := p.active(ctx, sessionID)
	return LanguageState{Language: lang, Direction: Direction(lang)}
}

// SetLanguage switches the active language and persists it. The returned
// direction is the side effect the client applies to the document.
func (p *LanguageProvider) SetLanguage(ctx context.Context, sessionID, lang string) (LanguageState, error) {
	if _, ok := translations[lang]; !ok {
		return LanguageState{}, fmt.Errorf("unsupported language %q", lang)
	}

	if err := p.kv.Set(ctx, storage.SessionKey(storage.KeyLanguage, sessionID), []byte(lang)); err != nil {
		return LanguageState{}, fmt.Errorf("failed to persist language: %w", err)
	}
	return LanguageState{Language: lang, Direction: Direction(lang)}, nil
}

// Translate maps key through the session's active language. An unmapped
// key returns the key itself and logs a developer warning.
func (p *LanguageProvider) Translate(ctx context.Context, sessionID, key string) string {
	lang := p.active(ctx, sessionID)
	if value, ok := translations[lang][key]; ok {
		return value
	}
	p.log.WithFields(logrus.Fields{"language": lang, "key": key}).Warn("missing translation")
	return key
}

// Languages lists the supported language tags, sorted. The translation
// table is the source of truth.
func (p *LanguageProvider) Languages() []string {
	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func (p *LanguageProvider) active(ctx context.Context, sessionID string) string {
	data, err := p.kv.Get(ctx, storage.SessionKey(storage.KeyLanguage, sessionID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.log.WithError(err).WithField("session", sessionID).Warn("failed to load language")
		}
		return p.defaultLanguage
	}

	lang := string(data)
	if _, ok := translations[lang]; !ok {
		return p.defaultLanguage
	}
	return lang
}

// Direction returns the document text direction for a language tag.
func Direction(lang string) string {
	switch lang {
	case "ar", "ur", "fa", "he":
		return "rtl"
	default:
		return "ltr"
	}
}
