package domain

import (
	"errors"
	"fmt"
)

// ConfigError reports an unusable request: an unknown provider id or a
// credential field the caller did not supply. Not retryable.
type ConfigError struct {
	Provider string
	Field    string
	Message  string
}

func (e *ConfigError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Field != "":
		return fmt.Sprintf("config: provider %s requires credential %q", e.Provider, e.Field)
	case e.Message != "":
		return "config: " + e.Message
	default:
		return fmt.Sprintf("config: provider %s is not usable", e.Provider)
	}
}

// ProviderError reports a rejected or failed remote call. Body carries the
// raw response payload for diagnostics.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Body)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("%s: provider failure", e.Provider)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// TimeoutError reports an async generation that never reached a terminal
// state within the poll ceiling. The remote job may still be running.
type TimeoutError struct {
	Provider string
	Attempts int
}

func (e *TimeoutError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: no terminal state after %d poll attempts", e.Provider, e.Attempts)
}

// CompositionError reports a local image-processing failure. Compositing is
// all-or-nothing, so no partial image accompanies it.
type CompositionError struct {
	Stage string
	Cause error
}

func (e *CompositionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("compose %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("compose %s failed", e.Stage)
}

func (e *CompositionError) Unwrap() error { return e.Cause }

func IsConfig(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

func IsProvider(err error) bool {
	var e *ProviderError
	return errors.As(err, &e)
}

func IsTimeout(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

func IsComposition(err error) bool {
	var e *CompositionError
	return errors.As(err, &e)
}
