package sandbox

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestPolicyArgsFixedProtocol(t *testing.T) {
	ambient := Ambient{
		Env: map[string]string{
			"PATH": "/usr/bin:/bin",
			"HOME": "/home/alice",
			"USER": "alice",
		},
		UID: 1000,
		CWD: "/home/alice/project",
	}
	p := BuildPolicy(ambient, DefaultOptions())

	want := []string{
		"--die-with-parent",
		"--ro-bind", "/", "/",
		"--dev", "/dev",
		"--proc", "/proc",
		"--tmpfs", "/tmp",
		"--tmpfs", "/var",
		"--tmpfs", "/run",
		"--dir", "/run/user/1000",
		"--unshare-pid",
		"--unshare-cgroup",
		"--unshare-ipc",
		"--unshare-net",
		"--cap-drop", "ALL",
		"--clearenv",
		"--setenv", "PATH", "/usr/bin:/bin",
		"--setenv", "HOME", "/home/alice",
		"--setenv", "USER", "alice",
		"--chdir", "/home/alice/project",
		"--new-session",
		"--", "/bin/sh", "-c", "echo hello",
	}

	if got := p.Args("echo hello"); !reflect.DeepEqual(got, want) {
		t.Fatalf("argv mismatch:\n got: %v\nwant: %v", got, want)
	}
}

func TestPolicyArgsNoCapDrop(t *testing.T) {
	opts := DefaultOptions()
	opts.DropCapabilities = false
	args := BuildPolicy(Ambient{}, opts).Args("true")

	for _, a := range args {
		if a == "--cap-drop" {
			t.Fatal("--cap-drop present with DropCapabilities=false")
		}
	}
}

func TestPolicyArgsCommandVerbatim(t *testing.T) {
	// The command text passes to sh -c untouched; quoting is the sandbox
	// user's business, not ours.
	cmd := `echo "a b" | grep 'a' && exit 3`
	args := BuildPolicy(Ambient{}, DefaultOptions()).Args(cmd)

	if got := args[len(args)-1]; got != cmd {
		t.Errorf("final arg = %q, want command verbatim", got)
	}
	if got := args[len(args)-3]; got != "/bin/sh" {
		t.Errorf("shell = %q, want /bin/sh", got)
	}
	if got := args[len(args)-4]; got != "--" {
		t.Errorf("missing -- terminator before shell, got %q", got)
	}
}

func TestPolicyArgsSetenvPairsOrdered(t *testing.T) {
	ambient := Ambient{Env: map[string]string{
		"PATH":    "/bin",
		"LC_TIME": "C",
		"LC_ALL":  "C",
	}}
	args := BuildPolicy(ambient, DefaultOptions()).Args("true")

	var setenvs []string
	for i := 0; i < len(args)-2; i++ {
		if args[i] == "--setenv" {
			setenvs = append(setenvs, args[i+1])
		}
	}
	want := []string{"PATH", "HOME", "USER", "LC_ALL", "LC_TIME"}
	if !reflect.DeepEqual(setenvs, want) {
		t.Errorf("setenv order = %v, want %v", setenvs, want)
	}
}

func TestFindBwrapCustomPath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "bwrap")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindBwrap(fake)
	if err != nil {
		t.Fatalf("FindBwrap(%s): %v", fake, err)
	}
	if got != fake {
		t.Errorf("FindBwrap = %q, want custom path %q", got, fake)
	}
}

func TestFindBwrapMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if _, err := FindBwrap(""); err == nil {
		t.Error("expected error with empty PATH and no custom path")
	}
	if Available("") {
		t.Error("Available should be false with empty PATH")
	}
}
