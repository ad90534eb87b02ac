package repo

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a telemetry provider call could not produce
// live data. The fetcher uses the kind to decide how loudly to log before
// falling back to simulated telemetry; no kind ever reaches the caller.
type FailureKind string

const (
	// FailureUnavailable marks a provider that was never usable for this
	// call: missing or placeholder credential. Anticipated, falls back
	// silently.
	FailureUnavailable FailureKind = "unavailable"
	// FailureBadResponse marks a non-success status or malformed body.
	FailureBadResponse FailureKind = "bad_response"
	// FailureTransport marks network or timeout errors.
	FailureTransport FailureKind = "transport"
)

// Failure is a classified provider error feeding the single fallback
// decision point in the telemetry fetcher.
type Failure struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: provider %s", f.Op, f.Kind)
	}
	return fmt.Sprintf("%s: provider %s: %v", f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func unavailable(op string) error {
	return &Failure{Kind: FailureUnavailable, Op: op}
}

func badResponse(op string, err error) error {
	return &Failure{Kind: FailureBadResponse, Op: op, Err: err}
}

func transport(op string, err error) error {
	return &Failure{Kind: FailureTransport, Op: op, Err: err}
}

// KindOf extracts the failure kind from err, defaulting to FailureTransport
// for unclassified errors.
func KindOf(err error) FailureKind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}
	return FailureTransport
}
