// Package sandbox runs shell commands inside a bubblewrap sandbox: the host
// filesystem is visible read-only, the network is unreachable, and writes
// only land in throwaway tmpfs directories that vanish with the process tree.
package sandbox

import (
	"os"
	"strings"
)

// Ambient is the host-process context a policy is derived from. It is
// captured once per invocation and passed explicitly, so BuildPolicy stays a
// pure function of its inputs.
type Ambient struct {
	Env map[string]string // process environment, name -> value
	UID int               // effective user id, keys /run/user/<uid>
	CWD string            // working directory for the sandboxed command
}

// CaptureAmbient snapshots the current process environment, effective user
// id, and working directory.
func CaptureAmbient() Ambient {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	// PWD preserves the logical path (symlinks intact) when the shell set it.
	cwd := env["PWD"]
	if cwd == "" {
		cwd, _ = os.Getwd()
	}

	return Ambient{Env: env, UID: os.Getuid(), CWD: cwd}
}
