package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"loopauth/internal/callback"
	"loopauth/internal/flow"
	"loopauth/internal/provider"
	"loopauth/internal/surface"
	"loopauth/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

type loginOptions struct {
	noBrowser bool
	timeout   time.Duration
	clientID  string
	jsonOut   bool
}

// loginResult is printed with --json.
type loginResult struct {
	IDToken  string             `json:"id_token"`
	Identity *provider.Identity `json:"identity,omitempty"`
}

func newLoginCmd() *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in through the browser and print the identity token",
		Long: `Start a loopback callback listener on the first free port of the
configured range, open the identity provider's sign-in page and wait for
the identity token.

The token is printed to stdout; progress goes to stderr.

Examples:
  loopauth login
  loopauth login --no-browser          # print the sign-in URL instead of opening it
  loopauth login --timeout 2m --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noBrowser, "no-browser", false, "Print the sign-in URL instead of opening a browser")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "How long to wait for sign-in (default from config, 5m)")
	cmd.Flags().StringVar(&opts.clientID, "client-id", "", "OAuth client ID (overrides config)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the token and decoded identity as JSON")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *loginOptions) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if opts.timeout > 0 {
		cfg.Flow.Timeout = opts.timeout
	}
	if opts.clientID != "" {
		cfg.Provider.ClientID = opts.clientID
	}

	var surfaces surface.Manager = surface.NewBrowser()
	if opts.noBrowser {
		surfaces = surface.NewMemory()
	}

	coordinator := flow.NewCoordinator(flow.Options{
		Listener: cfg.CallbackConfig(),
		Timeout:  cfg.Flow.Timeout,
		Surfaces: surfaces,
		Window:   cfg.WindowTemplate(),
	})

	stderr := cmd.ErrOrStderr()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stderr))

	var request provider.AuthRequest
	token, err := coordinator.SignIn(cmd.Context(), func(info callback.ServerInfo) (string, string, error) {
		req, err := provider.Build(cfg.ProviderConfig(), info.CallbackURL)
		if err != nil {
			return "", "", err
		}
		request = req
		if opts.noBrowser {
			fmt.Fprintf(stderr, "Open this URL in your browser to sign in:\n\n  %s\n\n", request.URL)
		}
		s.Suffix = fmt.Sprintf(" Waiting for sign-in (callback on port %d, timeout %s)...", info.Port, coordinator.Timeout())
		s.Start()
		return request.URL, request.State, nil
	})
	s.Stop()
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	var identity *provider.Identity
	if id, err := provider.DecodeIdentity(token); err != nil {
		logging.Debug("Login", "Token is not a decodable JWT: %v", err)
	} else {
		identity = &id
		if err := provider.CheckNonce(id, request.Nonce); err != nil {
			logging.Warn("Login", "%v", err)
		}
	}

	return printLoginResult(cmd.OutOrStdout(), stderr, token, identity, opts.jsonOut)
}

func printLoginResult(stdout, stderr io.Writer, token string, identity *provider.Identity, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(loginResult{IDToken: token, Identity: identity})
	}

	if identity != nil {
		who := identity.Email
		if who == "" {
			who = identity.Subject
		}
		fmt.Fprintf(stderr, "Signed in as %s\n", who)
	}
	_, err := fmt.Fprintln(stdout, token)
	return err
}
