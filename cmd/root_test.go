package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"loopauth/internal/callback"
	"loopauth/internal/flow"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()

	SetVersion("1.2.3-test")
	if GetVersion() != "1.2.3-test" {
		t.Errorf("Expected version to be 1.2.3-test, got %s", GetVersion())
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "loopauth" {
		t.Errorf("Expected Use to be 'loopauth', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("Expected descriptions to be set")
	}
	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
	for _, name := range []string{"config-path", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "loopauth version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	if got := buf.String(); got != "loopauth version 1.0.0\n" {
		t.Errorf("Expected version output %q, got %q", "loopauth version 1.0.0\n", got)
	}
}

func TestSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}

	for _, expected := range []string{"version", "login", "ports"} {
		if !found[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitCodeSuccess},
		{"generic", errors.New("boom"), ExitCodeError},
		{"no port", fmt.Errorf("start: %w", callback.ErrNoPortAvailable), ExitCodeNoPort},
		{"timeout", fmt.Errorf("sign-in failed: %w", flow.ErrFlowTimeout), ExitCodeTimeout},
		{"provider error", fmt.Errorf("sign-in failed: %w", &flow.CallbackError{Message: "access_denied"}), ExitCodeAuthFailed},
		{"abandoned", flow.ErrChannelClosed, ExitCodeAuthFailed},
		{"state mismatch", fmt.Errorf("sign-in failed: %w", flow.ErrStateMismatch), ExitCodeAuthFailed},
		{"invalid url", flow.ErrInvalidURL, ExitCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExitCode(tt.err); got != tt.want {
				t.Errorf("getExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
