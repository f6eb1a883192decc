package util

import (
	"fmt"
	"regexp"
	"strconv"
)

type Version struct {
	Major uint
	Minor uint
	Patch uint
}

// SqcfgVersion is the version of this tool.
var SqcfgVersion = Version{1, 2, 0}

var versionRe = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// ParseVersion parses version strings such as "v1.2.3", "3.21" or
// "3.28.1-msvc1". Missing minor or patch components are zero and any
// suffix after the numeric components is ignored.
func ParseVersion(s string) (Version, error) {
	match := versionRe.FindStringSubmatch(s)
	if match == nil {
		return Version{}, fmt.Errorf("invalid version string %q", s)
	}

	parts := [3]uint{}
	for i, m := range match[1:] {
		if m == "" {
			continue
		}
		part, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			return Version{}, err
		}
		parts[i] = uint(part)
	}
	return Version{parts[0], parts[1], parts[2]}, nil
}

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// AtLeast reports whether v is equal to or newer than other.
func (v Version) AtLeast(other Version) bool {
	return !v.Less(other)
}

func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}
