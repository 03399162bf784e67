package semantic

import (
	"fmt"
	"strings"
)

// AnalysisError aggregates every error the analyzer found in its single
// pass over a program, so a user sees all of them at once instead of
// re-running the checker after fixing each in turn.
type AnalysisError struct {
	Errors []string
}

func (e *AnalysisError) Error() string {
	if len(e.Errors) == 1 {
		return "type error: " + e.Errors[0]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "type checking failed with %d error(s):\n", len(e.Errors))
	for i, msg := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, msg)
	}
	return sb.String()
}
