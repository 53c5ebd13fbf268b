package config

import "time"

// LoopauthConfig is the top-level configuration structure for loopauth.
type LoopauthConfig struct {
	Listener ListenerConfig `yaml:"listener" envPrefix:"LISTENER_"`
	Flow     FlowConfig     `yaml:"flow" envPrefix:"FLOW_"`
	Window   WindowConfig   `yaml:"window" envPrefix:"WINDOW_"`
	Provider ProviderConfig `yaml:"provider" envPrefix:"PROVIDER_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
}

// ListenerConfig selects where the callback listener binds.
type ListenerConfig struct {
	Host      string `yaml:"host,omitempty" env:"HOST"`            // Loopback address (default: 127.0.0.1)
	PortStart int    `yaml:"portStart,omitempty" env:"PORT_START"` // First port of the range (default: 38714)
	PortEnd   int    `yaml:"portEnd,omitempty" env:"PORT_END"`     // Last port, inclusive (default: 38724)
}

// FlowConfig bounds the sign-in wait.
type FlowConfig struct {
	Timeout time.Duration `yaml:"timeout,omitempty" env:"TIMEOUT"` // Hard deadline of the wait (default: 300s)
}

// WindowConfig describes the sign-in window. Its label and 500x600 size are
// fixed; only the title can be changed.
type WindowConfig struct {
	Title string `yaml:"title,omitempty" env:"TITLE"` // Window title (default: Google Sign In)
}

// ProviderConfig describes the identity provider client.
type ProviderConfig struct {
	AuthURL  string   `yaml:"authURL,omitempty" env:"AUTH_URL"`
	ClientID string   `yaml:"clientID,omitempty" env:"CLIENT_ID"`
	Scopes   []string `yaml:"scopes,omitempty" env:"SCOPES" envSeparator:","`
	Prompt   string   `yaml:"prompt,omitempty" env:"PROMPT"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `yaml:"level,omitempty" env:"LEVEL"` // debug, info, warn, error (default: info)
	File  string `yaml:"file,omitempty" env:"FILE"`   // Rotating log file; empty logs to stderr
}
