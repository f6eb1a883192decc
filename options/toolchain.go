package options

import (
	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/toolchain"
	"github.com/daedaleanai/sqcfg/util"
)

const (
	Auto = "AUTO"
	On   = "ON"
	Off  = "OFF"
)

// LinuxStatic opts glibc Linux builds into a static C++ runtime.
var LinuxStatic = BoolOption{
	Name:        "SQ_SRT_LINUX_STATIC",
	Description: "Statically link libstdc++ and libgcc on glibc based Linux",
	DefaultFn:   func() bool { return false },
}

// RuntimeProperty controls how the MSVC static runtime is requested.
var RuntimeProperty = StringOption{
	Name:          "SQ_SRT_MSVC_RUNTIME_PROPERTY",
	Description:   "Select the MSVC runtime with the MSVC_RUNTIME_LIBRARY property (AUTO: if the generator supports it)",
	AllowedValues: []string{Auto, On, Off},
	DefaultFn:     func() string { return Auto },
}

// BuildConfig is the build configuration single-config generators build.
var BuildConfig = StringOption{
	Name:        "SQ_BUILD_CONFIG",
	Description: "Build configuration to evaluate configuration dependent flags for",
	DefaultFn:   func() string { return "Release" },
}

var runtimePropertyMinVersion = util.Version{Major: 3, Minor: 15}

// ToolchainOptions reads the resolver options from `s`.
func ToolchainOptions(s *Set, facts toolchain.BuildEnvironmentFacts) toolchain.Options {
	opts := toolchain.Options{
		LinuxStatic: s.Bool(LinuxStatic),
	}

	switch s.String(RuntimeProperty) {
	case On:
		opts.RuntimeProperty = true
	case Off:
		opts.RuntimeProperty = false
	default:
		opts.RuntimeProperty = generatorSupportsRuntimeProperty(facts.GeneratorVersion)
	}
	return opts
}

func generatorSupportsRuntimeProperty(version string) bool {
	if version == "" {
		return false
	}
	v, err := util.ParseVersion(version)
	if err != nil {
		log.Debug("Cannot parse generator version '%s': %s.\n", version, err)
		return false
	}
	return v.AtLeast(runtimePropertyMinVersion)
}
