package agdlerrors

import "errors"

// ExitCode maps an error from this package's taxonomy to a process exit
// code, so cmd/agdlrun can report a specific non-zero status per §7 rather
// than a single generic failure code. Values above the reserved 0 (success)
// and 1 (unclassified failure) are assigned in taxonomy declaration order.
func ExitCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return 1
	}
	switch e.kind {
	case KindLex:
		return 2
	case KindSyntax:
		return 3
	case KindUnknownTransformer:
		return 4
	case KindConfig:
		return 5
	case KindRuntimeCompute:
		return 6
	case KindNonTerminating:
		return 7
	default:
		return 1
	}
}
