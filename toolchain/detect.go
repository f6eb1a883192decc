package toolchain

import (
	"context"

	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/util"
)

// Detector classifies build environments. Profiles are memoized per facts
// value, so the libc probe runs at most once for a given environment.
type Detector struct {
	prober   LibcProber
	profiles util.OncePer[BuildEnvironmentFacts, Profile]
}

// NewDetector returns a Detector using `prober` for Linux targets. A nil
// prober leaves the C library unknown.
func NewDetector(prober LibcProber) *Detector {
	if prober == nil {
		prober = StaticProber(LibcUnknown)
	}
	return &Detector{prober: prober}
}

// Detect returns the profile of `facts`, computing it on first use.
func (d *Detector) Detect(ctx context.Context, facts BuildEnvironmentFacts) Profile {
	return d.profiles.Once(facts, func() Profile {
		profile := d.classify(ctx, facts)
		log.Debug("Detected toolchain profile %s.\n", profile)
		return profile
	})
}

// Cached reports the memoized profile of `facts`, if there is one.
func (d *Detector) Cached(facts BuildEnvironmentFacts) (Profile, bool) {
	return d.profiles.Peek(facts)
}

func (d *Detector) classify(ctx context.Context, facts BuildEnvironmentFacts) Profile {
	vendor := facts.vendor()
	targetOS := facts.targetOS()
	profile := Profile{OS: targetOS, Vendor: vendor}

	if targetOS == OSWindows {
		msvcFrontend := facts.msvcFrontend()
		minGW := facts.minGW()
		profile.Libc = LibcMSVCRT

		switch {
		case vendor == VendorMSVC:
			profile.Family = FamilyMSVC
		case vendor == VendorClang && msvcFrontend:
			profile.Family = FamilyClangMSVCFrontend
		case vendor == VendorClang && !minGW:
			profile.Family = FamilyClangGNUFrontendOnMSVCTarget
		case minGW || vendor == VendorGNU:
			profile.Family = FamilyGNU
			profile.MinGW = true
		default:
			log.Debug("Unsupported Windows compiler %q.\n", facts.CompilerID)
			profile.Libc = LibcUnknown
		}
		return profile
	}

	if targetOS == OSLinux {
		switch vendor {
		case VendorGNU:
			profile.Family = FamilyGNU
		case VendorClang:
			profile.Family = FamilyClangGNUFrontend
		default:
			log.Debug("Unsupported Linux compiler %q.\n", facts.CompilerID)
			return profile
		}
		profile.Libc = d.prober.ProbeLibc(ctx, facts.Compiler)
		return profile
	}

	log.Debug("No flags are known for target system %q.\n", facts.SystemName)
	return profile
}
