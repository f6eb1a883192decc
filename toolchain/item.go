package toolchain

import (
	"fmt"
	"strings"

	"github.com/daedaleanai/sqcfg/util"
)

// Item is a single flag or link item. It is either a Literal, which applies
// to every build configuration, or a ConfigConditional, which applies only
// to some of them.
type Item interface {
	// Eval returns the item for one build configuration.
	Eval(config string) (string, bool)
	// Expr renders the item as a generator expression, deferring the choice
	// of configuration to build time.
	Expr() string
}

// Literal is an unconditional item.
type Literal string

func (l Literal) Eval(string) (string, bool) {
	return string(l), true
}

func (l Literal) Expr() string {
	return string(l)
}

// ConfigConditional applies Value only when the build configuration is Config,
// or, if Negate is set, only when it is not.
type ConfigConditional struct {
	Config string
	Negate bool
	Value  string
}

// OnlyIn returns an item present only in the `config` configuration.
func OnlyIn(config, value string) ConfigConditional {
	return ConfigConditional{Config: config, Value: value}
}

// ExceptIn returns an item present in every configuration except `config`.
func ExceptIn(config, value string) ConfigConditional {
	return ConfigConditional{Config: config, Negate: true, Value: value}
}

func (c ConfigConditional) Eval(config string) (string, bool) {
	if strings.EqualFold(config, c.Config) != c.Negate {
		return c.Value, true
	}
	return "", false
}

func (c ConfigConditional) Expr() string {
	if c.Negate {
		return fmt.Sprintf("$<$<NOT:$<CONFIG:%s>>:%s>", c.Config, c.Value)
	}
	return fmt.Sprintf("$<$<CONFIG:%s>:%s>", c.Config, c.Value)
}

func literals(flags ...string) []Item {
	return util.MappedSlice(flags, func(f string) Item { return Literal(f) })
}

func evalItems(items []Item, config string) []string {
	result := []string{}
	for _, item := range items {
		if v, ok := item.Eval(config); ok {
			result = append(result, v)
		}
	}
	return result
}

func renderItems(items []Item) []string {
	return util.MappedSlice(items, Item.Expr)
}
