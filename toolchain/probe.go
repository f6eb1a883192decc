package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/daedaleanai/sqcfg/log"
)

// DefaultProbeTimeout bounds a single libc probe compile.
const DefaultProbeTimeout = 10 * time.Second

// MuslMarker is the preprocessor macro the probe source requires to compile.
const MuslMarker = "__MUSL__"

const probeSourceName = "libc_probe.c"

// The marker comes from the C library headers, features.h pulls them in.
const probeSource = `#include <features.h>
#if !defined(` + MuslMarker + `)
#error "not musl"
#endif
int main(void) { return 0; }
`

var execCommandContext = exec.CommandContext

// LibcProber resolves the C library of a Linux target.
type LibcProber interface {
	ProbeLibc(ctx context.Context, compiler string) Libc
}

// CompilerProber classifies the C library by compiling a small source file
// that only builds against musl.
type CompilerProber struct {
	Timeout time.Duration
	// TempDir is the parent of the probe directory. The default temporary
	// directory is used when empty.
	TempDir string
}

// ProbeLibc returns LibcMusl if the probe compiles, LibcGlibc if the compiler
// rejects it and LibcUnknown if the compiler could not be run at all.
func (p CompilerProber) ProbeLibc(ctx context.Context, compiler string) Libc {
	if compiler == "" {
		log.Debug("No compiler to probe the C library with.\n")
		return LibcUnknown
	}

	dir, err := os.MkdirTemp(p.TempDir, "sqcfg-libc-probe-")
	if err != nil {
		log.Debug("Failed to create libc probe directory: %s.\n", err)
		return LibcUnknown
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, probeSourceName)
	if err := os.WriteFile(src, []byte(probeSource), 0600); err != nil {
		log.Debug("Failed to write libc probe source: %s.\n", err)
		return LibcUnknown
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := execCommandContext(ctx, compiler, "-fsyntax-only", "-x", "c", src)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	log.Debug("Running '%s'.\n", strings.Join(cmd.Args, " "))
	err = cmd.Run()

	if ctx.Err() != nil {
		log.Debug("Libc probe did not finish: %s.\n", ctx.Err())
		return LibcUnknown
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Debug("Libc probe rejected by compiler, assuming glibc: %s.\n", strings.TrimSpace(stderr.String()))
		return LibcGlibc
	}
	if err != nil {
		log.Debug("Failed to run libc probe: %s.\n", err)
		return LibcUnknown
	}
	return LibcMusl
}

// StaticProber reports a fixed C library without running anything.
type StaticProber Libc

func (s StaticProber) ProbeLibc(context.Context, string) Libc {
	return Libc(s)
}
