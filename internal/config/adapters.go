package config

import (
	"strings"

	"loopauth/internal/callback"
	"loopauth/internal/provider"
	"loopauth/internal/surface"
	"loopauth/pkg/logging"
)

// CallbackConfig returns the listener settings.
func (c LoopauthConfig) CallbackConfig() callback.Config {
	return callback.Config{
		Host:      c.Listener.Host,
		PortStart: c.Listener.PortStart,
		PortEnd:   c.Listener.PortEnd,
	}
}

// WindowTemplate returns the sign-in window spec without a URL.
func (c LoopauthConfig) WindowTemplate() surface.WindowSpec {
	spec := surface.SignInWindow(nil)
	if title := strings.TrimSpace(c.Window.Title); title != "" {
		spec.Title = title
	}
	return spec
}

// ProviderConfig returns the identity provider client settings.
func (c LoopauthConfig) ProviderConfig() provider.Config {
	return provider.Config{
		AuthURL:  c.Provider.AuthURL,
		ClientID: c.Provider.ClientID,
		Scopes:   c.Provider.Scopes,
		Prompt:   c.Provider.Prompt,
	}
}

// LogLevel returns the configured level, defaulting to info.
func (c LoopauthConfig) LogLevel() logging.LogLevel {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}
