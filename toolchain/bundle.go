package toolchain

import (
	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/util"
)

// Bundle is a named, resolved FlagSet that can be attached to any number of
// targets. Bundles are compared by content, not identity.
type Bundle struct {
	Name    string
	Module  Module
	Profile Profile
	Options Options
	Flags   FlagSet
}

// Equal reports whether two bundles are interchangeable.
func (b *Bundle) Equal(other *Bundle) bool {
	return b.Name == other.Name && b.Flags.Equal(other.Flags)
}

type bundleKey struct {
	module  Module
	profile Profile
	options Options
}

// Registry memoizes bundles per module, profile and options.
type Registry struct {
	bundles util.OncePer[bundleKey, *Bundle]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Bundle returns the bundle for the given key, resolving it on first use.
func (r *Registry) Bundle(module Module, profile Profile, opts Options) *Bundle {
	key := bundleKey{module, profile, opts}
	return r.bundles.Once(key, func() *Bundle {
		log.Debug("Resolving %s for %s.\n", module.BundleName(), profile)
		return &Bundle{
			Name:    module.BundleName(),
			Module:  module,
			Profile: profile,
			Options: opts,
			Flags:   Resolve(module, profile, opts),
		}
	})
}

// All returns every bundle resolved so far, ordered by name and profile.
func (r *Registry) All() []*Bundle {
	m := util.NewOrderedMap[string, *Bundle]()
	r.bundles.Range(func(key bundleKey, b *Bundle) {
		m.Insert(b.Name+"|"+key.profile.String()+"|"+optionsKey(key.options), b)
	})
	return m.Values()
}

func optionsKey(opts Options) string {
	key := ""
	for _, set := range []bool{opts.LinuxStatic, opts.RuntimeProperty} {
		if set {
			key += "1"
		} else {
			key += "0"
		}
	}
	return key
}
