package session

import (
	"context"
	"errors"
	"fmt"

	"halvi-backend/internal/storage"

	"github.com/sirupsen/logrus"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeState is the provider's exposed state. Theme is the explicit user
// choice and is empty when none was made; Active is the resolved theme.
type ThemeState struct {
	Theme       string `json:"theme"`
	SystemTheme string `json:"system_theme"`
	Active      string `json:"active"`
}

// ThemeProvider resolves the active theme: an explicit user choice
// overrides the client-reported system preference, which overrides the
// default. Both live in the store under their own namespaces, so they
// expire with the rest of the session state. A reported system preference
// never overrides a choice already in effect.
type ThemeProvider struct {
	kv           storage.KV
	defaultTheme string
	log          *logrus.Logger
}

func NewThemeProvider(kv storage.KV, log *logrus.Logger) *ThemeProvider {
	return &ThemeProvider{
		kv:           kv,
		defaultTheme: ThemeLight,
		log:          log,
	}
}

// State resolves the session's theme state.
func (p *ThemeProvider) State(ctx context.Context, sessionID string) ThemeState {
	choice := p.storedTheme(ctx, sessionID, storage.KeyTheme)
	system := p.storedTheme(ctx, sessionID, storage.KeySystemTheme)

	active := p.defaultTheme
	if system != "" {
		active = system
	}
	if choice != "" {
		active = choice
	}

	return ThemeState{Theme: choice, SystemTheme: system, Active: active}
}

// SetTheme persists an explicit user choice.
func (p *ThemeProvider) SetTheme(ctx context.Context, sessionID, theme string) (ThemeState, error) {
	if theme != ThemeLight && theme != ThemeDark {
		return ThemeState{}, fmt.Errorf("unknown theme %q", theme)
	}

	if err := p.kv.Set(ctx, storage.SessionKey(storage.KeyTheme, sessionID), []byte(theme)); err != nil {
		return ThemeState{}, fmt.Errorf("failed to persist theme: %w", err)
	}
	return p.State(ctx, sessionID), nil
}

// ClearTheme drops the explicit choice so resolution falls back to the
// system preference.
func (p *ThemeProvider) ClearTheme(ctx context.Context, sessionID string) (ThemeState, error) {
	if err := p.kv.Delete(ctx, storage.SessionKey(storage.KeyTheme, sessionID)); err != nil {
		return ThemeState{}, fmt.Errorf("failed to clear theme: %w", err)
	}
	return p.State(ctx, sessionID), nil
}

// ReportSystemTheme records the client's detected system preference.
func (p *ThemeProvider) ReportSystemTheme(ctx context.Context, sessionID, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := p.kv.Set(ctx, storage.SessionKey(storage.KeySystemTheme, sessionID), []byte(theme)); err != nil {
		return fmt.Errorf("failed to persist system theme: %w", err)
	}
	return nil
}

func (p *ThemeProvider) storedTheme(ctx context.Context, sessionID, namespace string) string {
	data, err := p.kv.Get(ctx, storage.SessionKey(namespace, sessionID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.log.WithError(err).WithField("session", sessionID).Warn("failed to load theme")
		}
		return ""
	}

	theme := string(data)
	if theme != ThemeLight && theme != ThemeDark {
		p.log.WithField("session", sessionID).Warn("corrupt theme in storage")
		return ""
	}
	return theme
}
