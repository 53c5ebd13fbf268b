package config

import (
	"loopauth/internal/callback"
	"loopauth/internal/flow"
	"loopauth/internal/provider"
	"loopauth/internal/surface"
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() LoopauthConfig {
	return LoopauthConfig{
		Listener: ListenerConfig{
			Host:      callback.DefaultHost,
			PortStart: callback.DefaultPortStart,
			PortEnd:   callback.DefaultPortEnd,
		},
		Flow: FlowConfig{
			Timeout: flow.DefaultTimeout,
		},
		Window: WindowConfig{
			Title: surface.SignInTitle,
		},
		Provider: ProviderConfig{
			AuthURL: provider.DefaultAuthURL,
			Scopes:  append([]string(nil), provider.DefaultScopes...),
			Prompt:  provider.DefaultPrompt,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
