package toolchain

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/daedaleanai/sqcfg/util"
)

// Format selects how Export prints bundles.
type Format string

const (
	FormatText Format = "text"
	FormatEnv  Format = "env"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts the names of the Format constants.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatEnv, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ExportOptions control how bundles are flattened.
type ExportOptions struct {
	Format Format
	// Config is the build configuration conditional items are evaluated for.
	Config string
	// MultiConfig keeps conditional items as generator expressions. The env
	// format always evaluates, since environment variables cannot defer.
	MultiConfig bool
}

type yamlBundle struct {
	Name    string   `yaml:"name"`
	Profile string   `yaml:"profile"`
	Flags   Resolved `yaml:"flags"`
}

// Export writes `bundles` to `w` in the requested format.
func Export(w io.Writer, bundles []*Bundle, opts ExportOptions) error {
	resolve := func(b *Bundle) Resolved {
		if opts.MultiConfig && opts.Format != FormatEnv {
			return b.Flags.Render()
		}
		return b.Flags.Evaluate(opts.Config)
	}

	switch opts.Format {
	case FormatText, "":
		for _, b := range bundles {
			r := resolve(b)
			fmt.Fprintf(w, "# %s (%s)\n", b.Name, b.Profile)
			fmt.Fprintf(w, "C: %s\n", strings.Join(r.CompileC, " "))
			fmt.Fprintf(w, "CXX: %s\n", strings.Join(r.CompileCxx, " "))
			fmt.Fprintf(w, "LINK: %s\n", strings.Join(r.Link, " "))
			for _, e := range util.OrderedEntries(r.Properties) {
				fmt.Fprintf(w, "PROPERTY %s: %s\n", e.Key, e.Value)
			}
		}
		return nil

	case FormatEnv:
		var cflags, cxxflags, ldflags []string
		properties := map[string]string{}
		for _, b := range bundles {
			r := resolve(b)
			cflags = append(cflags, r.CompileC...)
			cxxflags = append(cxxflags, r.CompileCxx...)
			ldflags = append(ldflags, r.Link...)
			for k, v := range r.Properties {
				properties[k] = v
			}
		}
		fmt.Fprintf(w, "CFLAGS=%q\n", strings.Join(cflags, " "))
		fmt.Fprintf(w, "CXXFLAGS=%q\n", strings.Join(cxxflags, " "))
		fmt.Fprintf(w, "LDFLAGS=%q\n", strings.Join(ldflags, " "))
		for _, e := range util.OrderedEntries(properties) {
			fmt.Fprintf(w, "# %s=%s\n", e.Key, e.Value)
		}
		return nil

	case FormatYAML:
		out := []yamlBundle{}
		for _, b := range bundles {
			out = append(out, yamlBundle{Name: b.Name, Profile: b.Profile.String(), Flags: resolve(b)})
		}
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshalling bundles: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}
