package options

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/util"
)

// Info describes a registered option and its current value.
type Info struct {
	Name          string
	Description   string
	Type          string
	AllowedValues []string
	Value         string
}

// BoolOption is a cache variable holding a boolean.
type BoolOption struct {
	Name        string
	Description string
	DefaultFn   func() bool
}

// StringOption is a cache variable holding one of AllowedValues, or any
// string if AllowedValues is empty.
type StringOption struct {
	Name          string
	Description   string
	AllowedValues []string
	DefaultFn     func() string
}

// Set resolves options against layered value sources.
type Set struct {
	values     map[string]string
	registered util.OrderedMap[string, Info]
}

// NewSet merges `layers` into one value source; later layers win.
func NewSet(layers ...map[string]string) *Set {
	values := map[string]string{}
	for _, layer := range layers {
		for name, value := range layer {
			values[name] = value
		}
	}
	registered := util.NewOrderedMap[string, Info]()
	registered.AllowOverrides()
	return &Set{values: values, registered: registered}
}

// Bool returns the value of `opt`. Invalid values are reported and replaced
// by the default.
func (s *Set) Bool(opt BoolOption) bool {
	value := false
	if opt.DefaultFn != nil {
		value = opt.DefaultFn()
	}
	if raw, ok := s.values[opt.Name]; ok {
		parsed, err := ParseBool(raw)
		if err != nil {
			log.Warning("Ignoring option '%s': %s.\n", opt.Name, err)
		} else {
			value = parsed
		}
	}

	s.registered.Insert(opt.Name, Info{
		Name:          opt.Name,
		Description:   opt.Description,
		Type:          "bool",
		AllowedValues: []string{"ON", "OFF"},
		Value:         formatBool(value),
	})
	return value
}

// String returns the value of `opt`. Disallowed values are reported and
// replaced by the default.
func (s *Set) String(opt StringOption) string {
	value := ""
	if opt.DefaultFn != nil {
		value = opt.DefaultFn()
	}
	if raw, ok := s.values[opt.Name]; ok {
		if canonical, ok := allowed(opt.AllowedValues, raw); ok {
			value = canonical
		} else {
			log.Warning("Ignoring option '%s': value '%s' is not one of %s.\n", opt.Name, raw, strings.Join(opt.AllowedValues, ", "))
		}
	}

	s.registered.Insert(opt.Name, Info{
		Name:          opt.Name,
		Description:   opt.Description,
		Type:          "string",
		AllowedValues: opt.AllowedValues,
		Value:         value,
	})
	return value
}

// Info lists every option read from the set, ordered by name.
func (s *Set) Info() []Info {
	return s.registered.Values()
}

// Values returns the current value of every option read from the set.
func (s *Set) Values() map[string]string {
	values := map[string]string{}
	for _, info := range s.registered.Values() {
		values[info.Name] = info.Value
	}
	return values
}

// allowed matches `v` case-insensitively and returns the spelling from `values`.
func allowed(values []string, v string) (string, bool) {
	if len(values) == 0 {
		return v, true
	}
	for _, a := range values {
		if strings.EqualFold(a, v) {
			return a, true
		}
	}
	return "", false
}

func formatBool(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// ParseBool interprets cache variable truth values: ON/OFF, TRUE/FALSE,
// YES/NO, Y/N and integers, case-insensitively.
func ParseBool(s string) (bool, error) {
	v := strings.TrimSpace(s)
	switch strings.ToUpper(v) {
	case "ON", "TRUE", "YES", "Y":
		return true, nil
	case "OFF", "FALSE", "NO", "N", "":
		return false, nil
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i != 0, nil
	}
	return false, fmt.Errorf("invalid boolean value '%s'", s)
}

// ParseDefinitions parses NAME=VALUE and NAME:TYPE=VALUE definitions.
func ParseDefinitions(defs []string) (map[string]string, error) {
	values := map[string]string{}
	for _, def := range defs {
		name, value, ok := strings.Cut(def, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid definition '%s', expected NAME=VALUE", def)
		}
		name, _, _ = strings.Cut(name, ":")
		values[name] = value
	}
	return values, nil
}

// LoadCache reads persisted option values. A missing file is an empty cache.
func LoadCache(path string) (map[string]string, error) {
	values := map[string]string{}
	if !util.FileExists(path) {
		return values, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading option cache: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing option cache %q: %w", path, err)
	}
	return values, nil
}

// SaveCache persists option values to `path`.
func SaveCache(path string, values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshalling option cache: %w", err)
	}
	if err := os.WriteFile(path, data, util.FileMode); err != nil {
		return fmt.Errorf("writing option cache: %w", err)
	}
	return nil
}
