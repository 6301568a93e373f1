package analysiolo

// outcomeState discriminates the three states of an Outcome.
type outcomeState int

const (
	outcomeEmpty outcomeState = iota
	outcomeOK
	outcomeFailed
)

// Outcome is a three-state result: success carrying a value, failure carrying
// an error, or empty meaning "no applicable data". Empty is deliberately not
// an error: a filter that matches zero transactions has nothing to compute,
// which callers must treat differently from a computation that failed.
type Outcome[T any] struct {
	state outcomeState
	value T
	err   error
}

// Ok returns a successful Outcome carrying v.
func Ok[T any](v T) Outcome[T] { return Outcome[T]{state: outcomeOK, value: v} }

// Empty returns an Outcome representing "no applicable data".
func Empty[T any]() Outcome[T] { return Outcome[T]{state: outcomeEmpty} }

// Fail returns a failed Outcome carrying err.
func Fail[T any](err error) Outcome[T] { return Outcome[T]{state: outcomeFailed, err: err} }

// IsOK returns true if the outcome is a success.
func (o Outcome[T]) IsOK() bool { return o.state == outcomeOK }

// IsEmpty returns true if the outcome is "no applicable data".
func (o Outcome[T]) IsEmpty() bool { return o.state == outcomeEmpty }

// IsFailure returns true if the outcome is a failure.
func (o Outcome[T]) IsFailure() bool { return o.state == outcomeFailed }

// Get returns the value and true on success, or the zero value and false.
func (o Outcome[T]) Get() (T, bool) { return o.value, o.state == outcomeOK }

// MustGet returns the value on success and panics otherwise.
func (o Outcome[T]) MustGet() T {
	if o.state != outcomeOK {
		panic("outcome holds no value")
	}
	return o.value
}

// Err returns the error of a failed outcome, or nil.
func (o Outcome[T]) Err() error { return o.err }

// MapOutcome applies f to the value of a successful outcome. Empty and
// failed outcomes pass through unchanged.
func MapOutcome[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	switch o.state {
	case outcomeOK:
		return Ok(f(o.value))
	case outcomeFailed:
		return Fail[U](o.err)
	default:
		return Empty[U]()
	}
}

// FlatMapOutcome applies f to the value of a successful outcome, propagating
// the state f returns. Empty and failed outcomes short-circuit.
func FlatMapOutcome[T, U any](o Outcome[T], f func(T) Outcome[U]) Outcome[U] {
	switch o.state {
	case outcomeOK:
		return f(o.value)
	case outcomeFailed:
		return Fail[U](o.err)
	default:
		return Empty[U]()
	}
}
