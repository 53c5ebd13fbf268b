package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"loopauth/internal/config"
	"loopauth/internal/flow"
	"loopauth/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeNoPort indicates the whole callback port range is in use.
	ExitCodeNoPort = 2
	// ExitCodeAuthFailed indicates the identity provider reported an error or the flow was abandoned.
	ExitCodeAuthFailed = 3
	// ExitCodeTimeout indicates the user did not finish signing in in time.
	ExitCodeTimeout = 4
)

// Global flags
var (
	configPath string
	debugLog   bool
)

// rootCmd represents the base command for the loopauth application.
var rootCmd = &cobra.Command{
	Use:   "loopauth",
	Short: "Sign in through the browser and capture the identity token locally",
	Long: `loopauth runs a loopback OAuth sign-in: it listens on a local port,
opens the identity provider's sign-in page and waits for the redirect to
deliver an identity token back to this machine.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// Interrupting the process cancels a pending sign-in.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "loopauth version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logging.Close()
	if err != nil {
		stop()
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var callbackErr *flow.CallbackError
	switch {
	case errors.Is(err, flow.ErrNoPortAvailable):
		return ExitCodeNoPort
	case errors.Is(err, flow.ErrFlowTimeout):
		return ExitCodeTimeout
	case errors.As(err, &callbackErr), errors.Is(err, flow.ErrChannelClosed), errors.Is(err, flow.ErrStateMismatch):
		return ExitCodeAuthFailed
	default:
		return ExitCodeError
	}
}

// loadSettings loads the configuration and initializes logging from it.
func loadSettings() (config.LoopauthConfig, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetDefaultConfigPath()
		if err != nil {
			return config.LoopauthConfig{}, err
		}
	}

	// Log config loading itself at the requested verbosity.
	bootLevel := logging.LevelWarn
	if debugLog {
		bootLevel = logging.LevelDebug
	}
	logging.InitForCLI(bootLevel, os.Stderr)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.LoopauthConfig{}, err
	}

	level := cfg.LogLevel()
	if debugLog {
		level = logging.LevelDebug
	}
	if cfg.Log.File != "" {
		logging.InitForFile(level, cfg.Log.File, logging.FileOptions{})
	} else {
		logging.InitForCLI(level, os.Stderr)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "Configuration directory (default ~/.config/loopauth)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newPortsCmd())
}
