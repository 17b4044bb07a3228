package executor

import (
	"fmt"

	"github.com/vk/rpgbaker/internal/descriptor"
)

// Phase is the stage of statement execution that failed.
type Phase int

const (
	PhaseReify Phase = iota
	PhaseEvaluate
)

func (p Phase) String() string {
	switch p {
	case PhaseReify:
		return "reify"
	case PhaseEvaluate:
		return "evaluate"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// StatementError reports the failure of the top-level statement at Index.
type StatementError struct {
	Index  int
	Source descriptor.Source
	Phase  Phase
	Err    error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d (%s): %s failed: %v", e.Index, e.Source, e.Phase, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }
