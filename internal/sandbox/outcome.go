package sandbox

import (
	"fmt"
	"strings"
	"time"
)

// State classifies how a sandboxed invocation ended.
type State int

const (
	// Completed means the command ran to an exit, zero or not. A non-zero
	// exit is the command's own business and is reported inline, not as a
	// failure of the sandbox.
	Completed State = iota

	// TimedOut means the wall-clock ceiling elapsed and the process tree
	// was killed.
	TimedOut

	// ToolMissing means the bwrap binary could not be located.
	ToolMissing

	// LaunchFailed means bwrap was found but could not be spawned.
	LaunchFailed
)

// Outcome is the raw result of one sandboxed invocation. It is produced
// once, formatted, and discarded, never cached or retried.
type Outcome struct {
	State    State
	ExitCode int
	Stdout   string
	Stderr   string

	// Timeout is the ceiling that was in effect, named in the timed-out
	// message.
	Timeout time.Duration

	// Err carries the diagnostic for LaunchFailed.
	Err string
}

// Format renders the outcome as the stable text contract returned to the
// host runtime. Callers pattern-match on substrings ("[Exit code:",
// "[stderr]:", "timed out"), so the wording here must not drift.
func (o Outcome) Format() string {
	switch o.State {
	case TimedOut:
		return fmt.Sprintf("[Error: Command timed out after %d seconds]", int(o.Timeout.Seconds()))
	case ToolMissing:
		return "[Error: bubblewrap (bwrap) not found. Please install bubblewrap: apt-get install bubblewrap]"
	case LaunchFailed:
		return fmt.Sprintf("[Error executing command: %s]", o.Err)
	}

	var b strings.Builder
	b.WriteString(o.Stdout)
	if o.Stderr != "" {
		b.WriteString("\n[stderr]:\n")
		b.WriteString(o.Stderr)
	}
	if o.ExitCode != 0 {
		fmt.Fprintf(&b, "\n[Exit code: %d]", o.ExitCode)
	}
	if b.Len() == 0 {
		return "[No output]"
	}
	return b.String()
}
