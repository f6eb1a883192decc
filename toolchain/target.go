package toolchain

import (
	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/util"
)

// Target collects the flags of one build target. Bundles attach to a target
// at most once per name; attaching the same bundle again leaves it unchanged.
type Target struct {
	Name  string
	Flags FlagSet

	attached []*Bundle
}

// DirectoryDefaults are the flags applied to every target of a directory.
type DirectoryDefaults struct {
	Target
}

// NewTarget returns a target without flags.
func NewTarget(name string) *Target {
	return &Target{Name: name}
}

// Attached lists the names of the bundles attached to the target.
func (t *Target) Attached() []string {
	return util.MappedSlice(t.attached, func(b *Bundle) string { return b.Name })
}

// AttachTo appends the bundle's flags to `target`. It reports whether the
// target changed. A bundle whose name is already attached with different
// flags is rejected with a warning.
func (b *Bundle) AttachTo(target *Target) bool {
	for _, a := range target.attached {
		if a.Name != b.Name {
			continue
		}
		if !a.Flags.Equal(b.Flags) {
			log.Warning("Target '%s' already has %s for %s, ignoring the one for %s.\n", target.Name, b.Name, a.Profile, b.Profile)
		}
		return false
	}
	target.attached = append(target.attached, b)
	target.Flags.CompileC = append(target.Flags.CompileC, b.Flags.CompileC...)
	target.Flags.CompileCxx = append(target.Flags.CompileCxx, b.Flags.CompileCxx...)
	target.Flags.Link = append(target.Flags.Link, b.Flags.Link...)
	target.Flags.Properties = append(target.Flags.Properties, b.Flags.Properties...)
	return true
}

// MergeInto adds the bundle's flags to the directory-wide defaults.
func (b *Bundle) MergeInto(defaults *DirectoryDefaults) bool {
	return b.AttachTo(&defaults.Target)
}
