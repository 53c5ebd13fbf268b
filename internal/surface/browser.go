package surface

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"loopauth/pkg/logging"
)

// browserLauncher starts the command that opens the browser. Tests replace it.
var browserLauncher = func(cmd *exec.Cmd) error {
	return cmd.Start()
}

// Browser opens sign-in windows in the system default browser. A browser tab
// cannot be sized or closed from outside, so size hints are ignored and Close
// only forgets the label.
type Browser struct {
	mu   sync.Mutex
	open map[string]string
}

// NewBrowser creates a Manager backed by the system browser.
func NewBrowser() *Browser {
	return &Browser{open: make(map[string]string)}
}

// Open launches the browser at spec.URL.
func (b *Browser) Open(spec WindowSpec) error {
	if spec.URL == nil {
		return fmt.Errorf("window %q has no URL", spec.Label)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.open[spec.Label]; ok {
		return fmt.Errorf("%w: %s", ErrWindowExists, spec.Label)
	}

	cmd, err := browserCommand(spec.URL.String())
	if err != nil {
		return err
	}
	if err := browserLauncher(cmd); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	b.open[spec.Label] = spec.URL.String()
	logging.Debug("Surface", "Opened %q in system browser (size hint %dx%d ignored)", spec.Label, spec.Width, spec.Height)
	return nil
}

// Close forgets the label so a later Open with the same label succeeds.
func (b *Browser) Close(label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.open[label]; !ok {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, label)
	}
	delete(b.open, label)
	logging.Debug("Surface", "Released %q; the browser tab must be closed by the user", label)
	return nil
}

func browserCommand(url string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "darwin":
		return exec.Command("open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
