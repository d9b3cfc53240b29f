// Package cpgerr defines the error taxonomy of spec.md §7: kinds, not
// exception class hierarchies. Every package that can fail in one of these
// ways constructs the matching type here rather than an ad-hoc
// fmt.Errorf, so callers can type-switch on kind without string matching.
package cpgerr

import "fmt"

// ConfigurationError reports an invalid builder state, an unresolved pass
// ordering, too many first/last passes, or a language that could not be
// instantiated. Raised while a configuration is assembled or built
// (Builder.RegisterPass, SeedDefaultPasses, Registry.RegisterByName,
// Build) or when a frontend cannot be created for a language; always
// fatal to that call.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// NewConfigurationError constructs a ConfigurationError with a formatted
// reason.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// ParseError reports that a frontend could not process a file. Recorded as
// a Diagnostic; fatal to the translation only when FailOnError is set.
type ParseError struct {
	File   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.File, e.Reason)
}

// ResolutionError reports a symbol or type resolution failure. Never fatal
// — passes must tolerate the partial graph that results.
type ResolutionError struct {
	Name   string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %q: %s", e.Name, e.Reason)
}

// InternalError reports an invariant violation (e.g. a scope-leave
// mismatch). Always fatal; carries the component and node context that
// detected it.
type InternalError struct {
	Component string
	Reason    string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s: %s", e.Component, e.Reason)
}

// ErrCancelled is returned when a translation observes its cancellation
// token set. It is a terminal, non-error status alongside the error kinds
// above: callers should check errors.Is(err, ErrCancelled) before treating
// a non-nil error from TranslationManager.Translate as a failure.
var ErrCancelled = &cancelledError{}

type cancelledError struct{}

func (*cancelledError) Error() string { return "translation cancelled" }
