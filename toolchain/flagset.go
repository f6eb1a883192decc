package toolchain

import "strings"

// Property is a symbolic build property, such as the MSVC runtime library
// selection. Its value is the concatenation of its items.
type Property struct {
	Name  string
	Value []Item
}

// Eval returns the property value for one build configuration.
func (p Property) Eval(config string) string {
	return strings.Join(evalItems(p.Value, config), "")
}

// Expr returns the property value as a generator expression.
func (p Property) Expr() string {
	return strings.Join(renderItems(p.Value), "")
}

// FlagSet is the result of resolving one module for one profile.
type FlagSet struct {
	CompileC   []Item
	CompileCxx []Item
	Link       []Item
	Properties []Property
}

// Empty reports whether the set carries no flags and no properties.
func (fs FlagSet) Empty() bool {
	return len(fs.CompileC) == 0 && len(fs.CompileCxx) == 0 && len(fs.Link) == 0 && len(fs.Properties) == 0
}

// Resolved holds plain string flags, either evaluated for one build
// configuration or rendered as generator expressions.
type Resolved struct {
	CompileC   []string          `yaml:"compile_c"`
	CompileCxx []string          `yaml:"compile_cxx"`
	Link       []string          `yaml:"link"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// Evaluate resolves every conditional item for `config`.
func (fs FlagSet) Evaluate(config string) Resolved {
	r := Resolved{
		CompileC:   evalItems(fs.CompileC, config),
		CompileCxx: evalItems(fs.CompileCxx, config),
		Link:       evalItems(fs.Link, config),
	}
	if len(fs.Properties) > 0 {
		r.Properties = map[string]string{}
		for _, p := range fs.Properties {
			r.Properties[p.Name] = p.Eval(config)
		}
	}
	return r
}

// Render keeps conditional items as generator expressions, for generators
// that pick the configuration at build time.
func (fs FlagSet) Render() Resolved {
	r := Resolved{
		CompileC:   renderItems(fs.CompileC),
		CompileCxx: renderItems(fs.CompileCxx),
		Link:       renderItems(fs.Link),
	}
	if len(fs.Properties) > 0 {
		r.Properties = map[string]string{}
		for _, p := range fs.Properties {
			r.Properties[p.Name] = p.Expr()
		}
	}
	return r
}

// Equal reports whether two sets carry the same items in the same order.
func (fs FlagSet) Equal(other FlagSet) bool {
	if len(fs.Properties) != len(other.Properties) {
		return false
	}
	for i := range fs.Properties {
		if fs.Properties[i].Name != other.Properties[i].Name || !itemsEqual(fs.Properties[i].Value, other.Properties[i].Value) {
			return false
		}
	}
	return itemsEqual(fs.CompileC, other.CompileC) &&
		itemsEqual(fs.CompileCxx, other.CompileCxx) &&
		itemsEqual(fs.Link, other.Link)
}

func itemsEqual(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
