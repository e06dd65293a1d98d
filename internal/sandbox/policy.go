package sandbox

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the wall-clock ceiling for one sandboxed command.
const DefaultTimeout = 60 * time.Second

const (
	fallbackPath    = "/usr/bin:/bin:/usr/sbin:/sbin"
	fallbackHome    = "/tmp"
	fallbackUser    = "sandbox"
	fallbackWorkdir = "/tmp"
)

// DefaultForwardEnv returns the display/locale variables forwarded into the
// sandbox when present in the ambient environment. Everything not on this
// list (credentials, agent sockets, session tokens) is deliberately dropped.
func DefaultForwardEnv() []string {
	return []string{"LANG", "COLORTERM", "EDITOR", "VISUAL", "PAGER"}
}

// Options configures sandboxed execution.
type Options struct {
	// Timeout is the wall-clock ceiling per command. Zero means
	// DefaultTimeout.
	Timeout time.Duration

	// DropCapabilities drops every process capability inside the sandbox.
	DropCapabilities bool

	// ForwardEnv lists ambient variables forwarded when present. LC_*
	// variables are always forwarded regardless of this list. Nil means
	// DefaultForwardEnv; an empty slice forwards nothing extra.
	ForwardEnv []string

	// BwrapPath overrides PATH lookup of the bwrap binary.
	BwrapPath string
}

// DefaultOptions returns the hardened defaults: 60s timeout, all
// capabilities dropped, the standard display/locale allow-list.
func DefaultOptions() Options {
	return Options{
		Timeout:          DefaultTimeout,
		DropCapabilities: true,
		ForwardEnv:       DefaultForwardEnv(),
	}
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.ForwardEnv == nil {
		o.ForwardEnv = DefaultForwardEnv()
	}
	return o
}

// EnvVar is one environment variable set inside the sandbox after clearenv.
type EnvVar struct {
	Name  string
	Value string
}

// Policy is the per-invocation sandbox configuration. It is derived, never
// persisted, and never shared between invocations.
type Policy struct {
	// Tmpfs are the fresh in-memory mounts, the only writable paths in the
	// sandbox. Everything else comes from the read-only root bind.
	Tmpfs []string

	// RuntimeDir is the per-user runtime directory created under /run.
	RuntimeDir string

	// Namespaces unshared from the host.
	UnsharePID    bool
	UnshareCgroup bool
	UnshareIPC    bool
	UnshareNet    bool

	// DropCapabilities drops ALL capabilities before running the command.
	DropCapabilities bool

	// Env is the complete child environment, applied in order after
	// clearenv. The ambient environment is never inherited implicitly.
	Env []EnvVar

	WorkDir       string
	NewSession    bool
	DieWithParent bool

	Timeout time.Duration
}

// BuildPolicy derives the sandbox policy for one invocation. It is pure and
// never fails: missing ambient values get safe defaults, and the same inputs
// always produce the same policy.
func BuildPolicy(ambient Ambient, opts Options) Policy {
	opts = opts.withDefaults()

	env := []EnvVar{
		{"PATH", valueOr(ambient.Env, "PATH", fallbackPath)},
		{"HOME", valueOr(ambient.Env, "HOME", fallbackHome)},
		{"USER", valueOr(ambient.Env, "USER", fallbackUser)},
	}
	for _, name := range opts.ForwardEnv {
		if v, ok := ambient.Env[name]; ok {
			env = append(env, EnvVar{name, v})
		}
	}

	// All locale categories (LC_ALL, LC_TIME, ...), sorted so the derived
	// argv is reproducible.
	var locales []string
	for name := range ambient.Env {
		if strings.HasPrefix(name, "LC_") {
			locales = append(locales, name)
		}
	}
	sort.Strings(locales)
	for _, name := range locales {
		env = append(env, EnvVar{name, ambient.Env[name]})
	}

	uid := ambient.UID
	if uid < 0 {
		uid = 0
	}

	workdir := ambient.CWD
	if workdir == "" {
		workdir = fallbackWorkdir
	}

	return Policy{
		Tmpfs:            []string{"/tmp", "/var", "/run"},
		RuntimeDir:       "/run/user/" + strconv.Itoa(uid),
		UnsharePID:       true,
		UnshareCgroup:    true,
		UnshareIPC:       true,
		UnshareNet:       true,
		DropCapabilities: opts.DropCapabilities,
		Env:              env,
		WorkDir:          workdir,
		NewSession:       true,
		DieWithParent:    true,
		Timeout:          opts.Timeout,
	}
}

func valueOr(env map[string]string, name, fallback string) string {
	if v, ok := env[name]; ok && v != "" {
		return v
	}
	return fallback
}
