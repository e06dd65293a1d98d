package sandbox

import (
	"fmt"
	"os"
	"os/exec"
)

const shell = "/bin/sh"

// Args assembles the bubblewrap argument vector for one command. bwrap's
// grammar is order-sensitive: mounts come before namespace flags, capability
// and environment setup before chdir/session flags, and the command follows
// the "--" terminator.
func (p Policy) Args(command string) []string {
	args := make([]string, 0, 40+2*len(p.Env))

	if p.DieWithParent {
		args = append(args, "--die-with-parent")
	}

	// The whole host tree, read-only, plus fresh /dev and /proc. The pseudo
	// filesystems are mounted new rather than bound, so they carry no host
	// process state.
	args = append(args, "--ro-bind", "/", "/")
	args = append(args, "--dev", "/dev")
	args = append(args, "--proc", "/proc")

	for _, dir := range p.Tmpfs {
		args = append(args, "--tmpfs", dir)
	}
	if p.RuntimeDir != "" {
		args = append(args, "--dir", p.RuntimeDir)
	}

	if p.UnsharePID {
		args = append(args, "--unshare-pid")
	}
	if p.UnshareCgroup {
		args = append(args, "--unshare-cgroup")
	}
	if p.UnshareIPC {
		args = append(args, "--unshare-ipc")
	}
	if p.UnshareNet {
		args = append(args, "--unshare-net")
	}

	if p.DropCapabilities {
		args = append(args, "--cap-drop", "ALL")
	}

	args = append(args, "--clearenv")
	for _, e := range p.Env {
		args = append(args, "--setenv", e.Name, e.Value)
	}

	args = append(args, "--chdir", p.WorkDir)
	if p.NewSession {
		args = append(args, "--new-session")
	}

	args = append(args, "--", shell, "-c", command)
	return args
}

// FindBwrap locates the bwrap binary. A customPath that exists wins;
// otherwise PATH is searched.
func FindBwrap(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
	}

	path, err := exec.LookPath("bwrap")
	if err != nil {
		return "", fmt.Errorf("bwrap not found in PATH: %w", err)
	}
	return path, nil
}

// Available reports whether the bwrap binary can be resolved.
func Available(customPath string) bool {
	_, err := FindBwrap(customPath)
	return err == nil
}
