package toolchain

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// fakeCompiler makes the probe run this test binary instead of a compiler.
// The helper accepts the probe source if SQCFG_FAKE_LIBC is "musl".
func fakeCompiler(t *testing.T, libc string) {
	t.Helper()
	orig := execCommandContext
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperCompiler", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "SQCFG_HELPER_COMPILER=1", "SQCFG_FAKE_LIBC="+libc)
		return cmd
	}
	t.Cleanup(func() { execCommandContext = orig })
}

func TestHelperCompiler(t *testing.T) {
	if os.Getenv("SQCFG_HELPER_COMPILER") != "1" {
		return
	}

	args := os.Args
	src := args[len(args)-1]
	data, err := os.ReadFile(src)
	if err != nil || !includesLibcHeaderBeforeMarker(string(data)) {
		os.Exit(2)
	}

	switch os.Getenv("SQCFG_FAKE_LIBC") {
	case "musl":
		os.Exit(0)
	case "hang":
		time.Sleep(time.Minute)
	}
	os.Exit(1)
}

// includesLibcHeaderBeforeMarker reports whether `src` pulls in a C library
// header before it tests the marker, so a libc defined marker is visible.
func includesLibcHeaderBeforeMarker(src string) bool {
	include := strings.Index(src, "#include <features.h>")
	marker := strings.Index(src, MuslMarker)
	return include >= 0 && marker > include
}

func TestMarkerSourceIncludesFeaturesHeader(t *testing.T) {
	if !includesLibcHeaderBeforeMarker(probeSource) {
		t.Fatalf("libc source does not include <features.h> before testing %s:\n%s", MuslMarker, probeSource)
	}
}

// gccWithMarker returns a compiler wrapper that runs gcc with an include
// directory whose features.h defines the musl marker before deferring to the
// real header.
func gccWithMarker(t *testing.T, gcc string) string {
	t.Helper()
	dir := t.TempDir()
	inc := filepath.Join(dir, "inc")
	if err := os.Mkdir(inc, 0755); err != nil {
		t.Fatal(err)
	}
	features := "#define " + MuslMarker + " 1\n#include_next <features.h>\n"
	if err := os.WriteFile(filepath.Join(inc, "features.h"), []byte(features), 0644); err != nil {
		t.Fatal(err)
	}
	wrapper := filepath.Join(dir, "musl-gcc")
	script := "#!/bin/sh\nexec " + gcc + " -isystem " + inc + " \"$@\"\n"
	if err := os.WriteFile(wrapper, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return wrapper
}

func TestMuslMarkerFromGCCHeaders(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("features.h is only provided by Linux C libraries")
	}
	gcc, err := exec.LookPath("gcc")
	if err != nil {
		t.Skip("gcc not found")
	}

	dir := t.TempDir()
	p := CompilerProber{TempDir: dir}

	if got := p.ProbeLibc(context.Background(), gccWithMarker(t, gcc)); got != LibcMusl {
		t.Fatalf("ProbeLibc() with marker headers = %s, want Musl", got)
	}
	assertEmptyDir(t, dir)

	if got := p.ProbeLibc(context.Background(), gcc); got != LibcGlibc {
		t.Fatalf("ProbeLibc() with host headers = %s, want Glibc", got)
	}
	assertEmptyDir(t, dir)
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("probe left %d entries behind in %s", len(entries), dir)
	}
}

func TestProbeLibc(t *testing.T) {
	tests := []struct {
		fake string
		want Libc
	}{
		{"musl", LibcMusl},
		{"glibc", LibcGlibc},
	}

	for _, test := range tests {
		t.Run(test.fake, func(t *testing.T) {
			fakeCompiler(t, test.fake)
			dir := t.TempDir()
			p := CompilerProber{TempDir: dir}

			got := p.ProbeLibc(context.Background(), "cc")
			if got != test.want {
				t.Fatalf("ProbeLibc() = %s, want %s", got, test.want)
			}
			assertEmptyDir(t, dir)
		})
	}
}

func TestProbeLibcTimeout(t *testing.T) {
	fakeCompiler(t, "hang")
	dir := t.TempDir()
	p := CompilerProber{TempDir: dir, Timeout: 200 * time.Millisecond}

	if got := p.ProbeLibc(context.Background(), "cc"); got != LibcUnknown {
		t.Fatalf("ProbeLibc() = %s, want Unknown", got)
	}
	assertEmptyDir(t, dir)
}

func TestProbeLibcMissingCompiler(t *testing.T) {
	dir := t.TempDir()
	p := CompilerProber{TempDir: dir}

	if got := p.ProbeLibc(context.Background(), "sqcfg-no-such-compiler"); got != LibcUnknown {
		t.Fatalf("ProbeLibc() = %s, want Unknown", got)
	}
	assertEmptyDir(t, dir)

	if got := p.ProbeLibc(context.Background(), ""); got != LibcUnknown {
		t.Fatalf("ProbeLibc() without compiler = %s, want Unknown", got)
	}
}

func TestProbeLibcUnusableTempDir(t *testing.T) {
	p := CompilerProber{TempDir: "/nonexistent/sqcfg"}
	if got := p.ProbeLibc(context.Background(), "cc"); got != LibcUnknown {
		t.Fatalf("ProbeLibc() = %s, want Unknown", got)
	}
}
