package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v2"
)

// BuildEnvironmentFacts are the inputs of detection. Nothing is read from the
// environment implicitly; FactsFromEnvironment is the only bridge to the host.
type BuildEnvironmentFacts struct {
	CompilerID       string `yaml:"compiler_id" toml:"compiler_id" mapstructure:"compiler_id"`
	FrontendVariant  string `yaml:"frontend_variant" toml:"frontend_variant" mapstructure:"frontend_variant"`
	Compiler         string `yaml:"compiler" toml:"compiler" mapstructure:"compiler"`
	SystemName       string `yaml:"system_name" toml:"system_name" mapstructure:"system_name"`
	TargetTriple     string `yaml:"target_triple" toml:"target_triple" mapstructure:"target_triple"`
	MinGW            bool   `yaml:"mingw" toml:"mingw" mapstructure:"mingw"`
	GeneratorVersion string `yaml:"generator_version" toml:"generator_version" mapstructure:"generator_version"`
	MultiConfig      bool   `yaml:"multi_config" toml:"multi_config" mapstructure:"multi_config"`
	BuildType        string `yaml:"build_type" toml:"build_type" mapstructure:"build_type"`
}

// LoadFacts reads facts from a YAML or TOML file, chosen by extension.
func LoadFacts(path string) (BuildEnvironmentFacts, error) {
	var facts BuildEnvironmentFacts

	data, err := os.ReadFile(path)
	if err != nil {
		return facts, fmt.Errorf("reading facts file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, &facts)
	case ".toml":
		err = toml.Unmarshal(data, &facts)
	default:
		return facts, fmt.Errorf("%w: %q", ErrUnknownFactsFormat, path)
	}
	if err != nil {
		return facts, fmt.Errorf("parsing facts file %q: %w", path, err)
	}
	return facts, nil
}

// FactsFromEnvironment derives facts from the compiler named by CXX or CC and
// the host operating system. Only static identity strings are used.
func FactsFromEnvironment(env map[string]string) BuildEnvironmentFacts {
	compiler := env["CXX"]
	if compiler == "" {
		compiler = env["CC"]
	}
	if compiler == "" {
		compiler = defaultCompiler(runtime.GOOS)
	}

	facts := BuildEnvironmentFacts{
		Compiler:   compiler,
		SystemName: systemNameFromGOOS(runtime.GOOS),
	}

	base := compilerBaseName(compiler)
	switch {
	case base == "cl":
		facts.CompilerID = "MSVC"
		facts.FrontendVariant = "MSVC"
	case base == "clang-cl":
		facts.CompilerID = "Clang"
		facts.FrontendVariant = "MSVC"
	case strings.Contains(base, "clang"):
		facts.CompilerID = "Clang"
		facts.FrontendVariant = "GNU"
	case strings.Contains(base, "gcc"), strings.Contains(base, "g++"), base == "cc", base == "c++":
		facts.CompilerID = "GNU"
		facts.FrontendVariant = "GNU"
	}
	facts.MinGW = strings.Contains(base, "mingw")

	return facts
}

// Merge returns f with every non-empty field of override applied on top.
// Boolean fields can only be switched on by an override.
func (f BuildEnvironmentFacts) Merge(override BuildEnvironmentFacts) BuildEnvironmentFacts {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&f.CompilerID, override.CompilerID)
	set(&f.FrontendVariant, override.FrontendVariant)
	set(&f.Compiler, override.Compiler)
	set(&f.SystemName, override.SystemName)
	set(&f.TargetTriple, override.TargetTriple)
	set(&f.GeneratorVersion, override.GeneratorVersion)
	set(&f.BuildType, override.BuildType)
	f.MinGW = f.MinGW || override.MinGW
	f.MultiConfig = f.MultiConfig || override.MultiConfig
	return f
}

func (f BuildEnvironmentFacts) vendor() Vendor {
	switch strings.ToLower(f.CompilerID) {
	case "gnu", "gcc":
		return VendorGNU
	case "clang", "appleclang":
		return VendorClang
	case "msvc":
		return VendorMSVC
	}
	return VendorOther
}

// msvcFrontend reports whether the driver takes cl.exe style arguments. An
// unspecified variant is inferred from the vendor and the driver name.
func (f BuildEnvironmentFacts) msvcFrontend() bool {
	switch strings.ToUpper(f.FrontendVariant) {
	case "MSVC":
		return true
	case "GNU":
		return false
	}
	switch f.vendor() {
	case VendorMSVC:
		return true
	case VendorClang:
		return compilerBaseName(f.Compiler) == "clang-cl"
	}
	return false
}

func (f BuildEnvironmentFacts) targetOS() OS {
	switch strings.ToLower(f.SystemName) {
	case "windows":
		return OSWindows
	case "linux":
		return OSLinux
	case "darwin", "macos":
		return OSMacOS
	}
	if f.SystemName == "" && f.TargetTriple != "" {
		triple := strings.ToLower(f.TargetTriple)
		switch {
		case strings.Contains(triple, "windows"), strings.Contains(triple, "mingw"):
			return OSWindows
		case strings.Contains(triple, "linux"):
			return OSLinux
		case strings.Contains(triple, "darwin"), strings.Contains(triple, "macos"):
			return OSMacOS
		}
	}
	return OSOther
}

// minGW is authoritative: the explicit marker or a windows-gnu triple wins
// over anything the compiler identity suggests.
func (f BuildEnvironmentFacts) minGW() bool {
	if f.MinGW {
		return true
	}
	triple := strings.ToLower(f.TargetTriple)
	return strings.Contains(triple, "mingw") || strings.HasSuffix(triple, "windows-gnu")
}

func compilerBaseName(compiler string) string {
	base := strings.ToLower(filepath.Base(filepath.FromSlash(compiler)))
	if i := strings.LastIndexAny(base, `\`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".exe")
}

func defaultCompiler(goos string) string {
	if goos == "windows" {
		return "cl"
	}
	return "c++"
}

func systemNameFromGOOS(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	}
	return goos
}
