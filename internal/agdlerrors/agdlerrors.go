// Package agdlerrors defines the error taxonomy raised by the AGDL front
// end, linker, and scheduler. Every error carries both a short machine
// identity (its Kind, reachable via errors.As and Error.Kind, or matched
// with errors.Is against another *Error of the same Kind) and a
// human-readable message built with the specific offending token, name, or
// instance.
package agdlerrors

import "fmt"

// Kind identifies which part of the taxonomy an error belongs to. Kind is
// not itself an error; compare it against Error.Kind.
type Kind int

const (
	// KindLex is a lexing failure: an invalid character or an unterminated
	// file literal.
	KindLex Kind = iota

	// KindSyntax is a parser failure: an unexpected token, a missing
	// expected literal, or a malformed tag.
	KindSyntax

	// KindUnknownTransformer is raised when an AGDL class name has no entry
	// in the transformer registry.
	KindUnknownTransformer

	// KindConfig is raised by a concrete transformer's Initialize when a
	// required config is missing or the wrong kind of value.
	KindConfig

	// KindRuntimeCompute is raised when a transformer's Compute fails.
	KindRuntimeCompute

	// KindNonTerminating is raised by the scheduler's optional cycle-count
	// safety valve.
	KindNonTerminating
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindSyntax:
		return "SyntaxError"
	case KindUnknownTransformer:
		return "UnknownTransformer"
	case KindConfig:
		return "ConfigError"
	case KindRuntimeCompute:
		return "RuntimeComputeError"
	case KindNonTerminating:
		return "NonTerminating"
	default:
		return "Error"
	}
}

// Error is the concrete error type for every member of the taxonomy. It
// wraps an optional underlying error and reports a Kind-prefixed message.
type Error struct {
	kind Kind
	msg  string
	wrap error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Kind returns the taxonomy member this error belongs to.
func (e *Error) Kind() Kind {
	return e.kind
}

// Unwrap gives the error that this Error wraps, if it wraps one.
func (e *Error) Unwrap() error {
	return e.wrap
}

// Is reports whether target is an *Error of the same Kind, so that code can
// write errors.Is(err, agdlerrors.NonTerminating(0)) style checks, or more
// idiomatically compare against the Kind via errors.As.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.kind == e.kind
}

func newf(kind Kind, format string, a ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...)}
}

func wrapf(kind Kind, wrapped error, format string, a ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...), wrap: wrapped}
}

// Lex returns a LexError describing an invalid character or unterminated
// file literal encountered at the given 1-based line/column.
func Lex(line, col int, format string, a ...interface{}) error {
	return newf(KindLex, "line %d, col %d: %s", line, col, fmt.Sprintf(format, a...))
}

// Syntax returns a SyntaxError describing a grammar violation at the given
// 1-based line/column.
func Syntax(line, col int, format string, a ...interface{}) error {
	return newf(KindSyntax, "line %d, col %d: %s", line, col, fmt.Sprintf(format, a...))
}

// UnknownTransformer returns an UnknownTransformer error for the given AGDL
// class name. knownNames, if non-empty, is listed to help the author spot a
// typo.
func UnknownTransformer(className string, knownNames string) error {
	if knownNames == "" {
		return newf(KindUnknownTransformer, "%q is not a registered transformer class", className)
	}
	return newf(KindUnknownTransformer, "%q is not a registered transformer class (known: %s)", className, knownNames)
}

// Config returns a ConfigError for the given transformer instance and
// reason.
func Config(instanceName, format string, a ...interface{}) error {
	return newf(KindConfig, "%s: %s", instanceName, fmt.Sprintf(format, a...))
}

// RuntimeCompute returns a RuntimeComputeError identifying the offending
// transformer instance and the current scheduler cycle, wrapping the
// underlying cause if there is one.
func RuntimeCompute(instanceName string, cycle int, cause error) error {
	if cause == nil {
		return newf(KindRuntimeCompute, "%s: compute failed at cycle %d", instanceName, cycle)
	}
	return wrapf(KindRuntimeCompute, cause, "%s: compute failed at cycle %d: %s", instanceName, cycle, cause.Error())
}

// NonTerminating returns a NonTerminating error reporting that the
// scheduler's configured maximum cycle count was exceeded without the
// frontier emptying.
func NonTerminating(maxCycles int) error {
	return newf(KindNonTerminating, "exceeded maximum of %d cycles without the graph quiescing", maxCycles)
}
