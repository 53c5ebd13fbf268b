package callback

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"loopauth/internal/rendezvous"
	"loopauth/pkg/logging"

	"github.com/gorilla/mux"
)

const (
	// DefaultHost is the loopback address the listener binds to.
	DefaultHost = "127.0.0.1"

	// DefaultPortStart is the first port of the callback range.
	DefaultPortStart = 38714

	// DefaultPortEnd is the last port (inclusive) of the callback range.
	DefaultPortEnd = 38724

	// CallbackPath serves the landing page.
	CallbackPath = "/callback"

	// ResultPath receives the token or error from the landing page.
	ResultPath = "/callback/result"
)

const subsystem = "CallbackListener"

// ErrNoPortAvailable is returned when every port of the range is in use.
var ErrNoPortAvailable = errors.New("no port available for callback listener")

// ErrInvalidPortRange is returned for a range that is empty or outside 1-65535.
var ErrInvalidPortRange = errors.New("invalid callback port range")

//go:embed templates/callback.html
var landingHTML []byte

// Config selects where the listener binds.
type Config struct {
	Host      string
	PortStart int
	PortEnd   int
}

// DefaultConfig returns the fixed loopback range 38714-38724.
func DefaultConfig() Config {
	return Config{
		Host:      DefaultHost,
		PortStart: DefaultPortStart,
		PortEnd:   DefaultPortEnd,
	}
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.PortStart == 0 && c.PortEnd == 0 {
		c.PortStart = DefaultPortStart
		c.PortEnd = DefaultPortEnd
	}
	return c
}

// Validate checks the port range after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.PortStart < 1 || c.PortEnd > 65535 || c.PortEnd < c.PortStart {
		return fmt.Errorf("%w: %d-%d", ErrInvalidPortRange, c.PortStart, c.PortEnd)
	}
	return nil
}

// ServerInfo describes where the identity provider must redirect to.
type ServerInfo struct {
	CallbackURL string `json:"callback_url"`
	Port        uint16 `json:"port"`
}

// Listener is a running callback server. It serves until Stop is called or
// the context given to Start is cancelled.
type Listener struct {
	info     ServerInfo
	server   *http.Server
	listener net.Listener
	cell     *rendezvous.Cell[Outcome]
	done     chan struct{}
	stopOnce sync.Once
}

// Start binds the first free port of cfg's range and begins serving the
// callback routes in the background. Results are delivered into cell.
func Start(ctx context.Context, cfg Config, cell *rendezvous.Cell[Outcome]) (*Listener, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	ln, port, err := bindFirstAvailable(cfg)
	if err != nil {
		return nil, err
	}

	l := &Listener{
		info: ServerInfo{
			CallbackURL: fmt.Sprintf("http://localhost:%d%s", port, CallbackPath),
			Port:        uint16(port),
		},
		listener: ln,
		cell:     cell,
		done:     make(chan struct{}),
	}

	router := mux.NewRouter()
	router.HandleFunc(CallbackPath, l.handleLanding).Methods(http.MethodGet)
	router.HandleFunc(ResultPath, l.handleResult).Methods(http.MethodGet)

	l.server = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go l.serve()

	go func() {
		select {
		case <-ctx.Done():
			l.Stop()
		case <-l.done:
		}
	}()

	logging.Info(subsystem, "Listening for OAuth callback on %s", l.info.CallbackURL)
	return l, nil
}

func bindFirstAvailable(cfg Config) (net.Listener, int, error) {
	for port := cfg.PortStart; port <= cfg.PortEnd; port++ {
		addr := net.JoinHostPort(cfg.Host, strconv.Itoa(port))
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			logging.Debug(subsystem, "Port %d unavailable: %v", port, err)
			continue
		}
		return ln, port, nil
	}
	return nil, 0, fmt.Errorf("%w: every port in %d-%d on %s is in use", ErrNoPortAvailable, cfg.PortStart, cfg.PortEnd, cfg.Host)
}

func (l *Listener) serve() {
	defer close(l.done)

	err := l.server.Serve(l.listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error(subsystem, err, "Callback listener on port %d stopped unexpectedly", l.info.Port)
		l.cell.Abandon()
	}
}

// Info returns the callback URL and port of the listener.
func (l *Listener) Info() ServerInfo {
	return l.info
}

// Done is closed once the serving goroutine has exited.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

// Stop closes the server immediately, without draining in-flight requests,
// and blocks until the serving goroutine has exited. Safe to call repeatedly.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() {
		if err := l.server.Close(); err != nil {
			logging.Debug(subsystem, "Closing callback server: %v", err)
		}
		logging.Debug(subsystem, "Callback listener on port %d stopped", l.info.Port)
	})
	<-l.done
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")
}

func (l *Listener) handleLanding(w http.ResponseWriter, _ *http.Request) {
	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(landingHTML)
}

func (l *Listener) handleResult(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var outcome Outcome
	switch {
	case query.Has("error"):
		outcome = ErrorOutcome(query.Get("error"))
	case query.Has("id_token"):
		outcome = TokenOutcome(query.Get("id_token"))
	default:
		logging.Warn(subsystem, "Ignoring result request without id_token or error parameter")
		writeOK(w)
		return
	}
	outcome = outcome.WithState(query.Get("state"))

	if l.cell.Resolve(outcome) {
		if outcome.IsError() {
			logging.Info(subsystem, "Received sign-in error from provider: %s", outcome.Message())
		} else {
			logging.Info(subsystem, "Received identity token (%d bytes)", len(outcome.Token()))
		}
	} else {
		logging.Debug(subsystem, "Ignoring duplicate result delivery")
	}

	writeOK(w)
}

func writeOK(w http.ResponseWriter) {
	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
