package toolchain

import (
	"fmt"
	"strings"
)

// Module selects one of the two flag tables.
type Module int

const (
	Warnings Module = iota
	StaticRuntime
)

// Modules lists every module in resolution order.
var Modules = []Module{Warnings, StaticRuntime}

func (m Module) String() string {
	switch m {
	case Warnings:
		return "warnings"
	case StaticRuntime:
		return "srt"
	}
	return fmt.Sprintf("Module(%d)", int(m))
}

// BundleName is the name consumers refer to the module's bundle by.
func (m Module) BundleName() string {
	return "sq::" + m.String()
}

// ParseModule accepts the names printed by Module.String.
func ParseModule(s string) (Module, error) {
	for _, m := range Modules {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModule, s)
}

// Options are the user controlled knobs of resolution.
type Options struct {
	// LinuxStatic adds static libstdc++/libgcc flags on glibc Linux.
	LinuxStatic bool
	// RuntimeProperty selects the MSVC runtime via MSVCRuntimeProperty
	// instead of raw /MT flags.
	RuntimeProperty bool
}

// Resolve computes the flags of `module` for `profile`. It never fails; an
// unsupported toolchain gets an empty FlagSet.
func Resolve(module Module, profile Profile, opts Options) FlagSet {
	switch module {
	case Warnings:
		return resolveWarnings(profile)
	case StaticRuntime:
		return resolveStaticRuntime(profile, opts)
	}
	return FlagSet{}
}
