package callback

type outcomeKind int

const (
	outcomeToken outcomeKind = iota
	outcomeError
)

// Outcome is the terminal value of a sign-in: either an identity token or a
// provider-reported error message.
type Outcome struct {
	kind  outcomeKind
	value string
	state string
}

// TokenOutcome returns a successful outcome carrying token.
func TokenOutcome(token string) Outcome {
	return Outcome{kind: outcomeToken, value: token}
}

// ErrorOutcome returns a failed outcome carrying the provider's message.
func ErrorOutcome(message string) Outcome {
	return Outcome{kind: outcomeError, value: message}
}

// IsError reports whether the outcome is a provider-reported failure.
func (o Outcome) IsError() bool {
	return o.kind == outcomeError
}

// Token returns the delivered token, or "" for an error outcome.
func (o Outcome) Token() string {
	if o.kind != outcomeToken {
		return ""
	}
	return o.value
}

// Message returns the provider error message, or "" for a token outcome.
func (o Outcome) Message() string {
	if o.kind != outcomeError {
		return ""
	}
	return o.value
}

// WithState returns a copy of o carrying the OAuth state echoed by the provider.
func (o Outcome) WithState(state string) Outcome {
	o.state = state
	return o
}

// State returns the echoed OAuth state, or "" when none was forwarded.
func (o Outcome) State() string {
	return o.state
}
