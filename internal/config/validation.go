package config

import (
	"fmt"
	"net/url"
	"strings"

	"loopauth/pkg/logging"
)

// FieldError is one invalid setting, named by its yaml path.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidationErrors collects every invalid setting found by Validate.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	reasons := make([]string, len(ve))
	for i, e := range ve {
		reasons[i] = e.Error()
	}
	return "invalid configuration: " + strings.Join(reasons, "; ")
}

// HasErrors reports whether any setting was rejected.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

func (ve *ValidationErrors) addf(field, format string, args ...any) {
	*ve = append(*ve, FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

// Validate checks the whole configuration and returns every problem found.
// The provider client ID is not required here; only commands that talk to the
// provider need it.
func Validate(c LoopauthConfig) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(c.Listener.Host) == "" {
		errs.addf("listener.host", "must not be empty")
	}
	if !validPort(c.Listener.PortStart) {
		errs.addf("listener.portStart", "%d is not between 1 and 65535", c.Listener.PortStart)
	}
	if !validPort(c.Listener.PortEnd) {
		errs.addf("listener.portEnd", "%d is not between 1 and 65535", c.Listener.PortEnd)
	}
	if c.Listener.PortStart > c.Listener.PortEnd {
		errs.addf("listener.portEnd", "%d is lower than portStart %d", c.Listener.PortEnd, c.Listener.PortStart)
	}

	if c.Flow.Timeout <= 0 {
		errs.addf("flow.timeout", "%s is not positive", c.Flow.Timeout)
	}

	if c.Provider.AuthURL != "" {
		if u, err := url.Parse(c.Provider.AuthURL); err != nil || !u.IsAbs() || u.Host == "" {
			errs.addf("provider.authURL", "%q is not an absolute URL", c.Provider.AuthURL)
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs.addf("log.level", "%v", err)
	}

	return errs
}
