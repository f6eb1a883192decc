package toolchain

import "fmt"

// Family classifies a compiler by the flag dialect it accepts and the linker
// it drives.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyMSVC
	FamilyClangMSVCFrontend
	FamilyClangGNUFrontendOnMSVCTarget
	FamilyGNU
	FamilyClangGNUFrontend
)

var familyNames = map[Family]string{
	FamilyUnknown:                      "Unknown",
	FamilyMSVC:                         "MSVC",
	FamilyClangMSVCFrontend:            "ClangMSVCFrontend",
	FamilyClangGNUFrontendOnMSVCTarget: "ClangGNUFrontendOnMSVCTarget",
	FamilyGNU:                          "GNU",
	FamilyClangGNUFrontend:             "ClangGNUFrontend",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// MSVCDialect reports whether the family takes cl.exe style flags.
func (f Family) MSVCDialect() bool {
	return f == FamilyMSVC || f == FamilyClangMSVCFrontend
}

// GNUDialect reports whether the family takes gcc style flags.
func (f Family) GNUDialect() bool {
	return f == FamilyGNU || f == FamilyClangGNUFrontend || f == FamilyClangGNUFrontendOnMSVCTarget
}

// OS is the target operating system.
type OS int

const (
	OSOther OS = iota
	OSWindows
	OSLinux
	OSMacOS
)

func (os OS) String() string {
	switch os {
	case OSWindows:
		return "Windows"
	case OSLinux:
		return "Linux"
	case OSMacOS:
		return "MacOS"
	}
	return "Other"
}

// Libc is the C library implementation of the target.
type Libc int

const (
	LibcUnknown Libc = iota
	LibcGlibc
	LibcMusl
	LibcMSVCRT
)

func (l Libc) String() string {
	switch l {
	case LibcGlibc:
		return "Glibc"
	case LibcMusl:
		return "Musl"
	case LibcMSVCRT:
		return "MSVCRT"
	}
	return "Unknown"
}

// Vendor is the compiler vendor independent of the dialect it emulates.
type Vendor int

const (
	VendorOther Vendor = iota
	VendorGNU
	VendorClang
	VendorMSVC
)

func (v Vendor) String() string {
	switch v {
	case VendorGNU:
		return "GNU"
	case VendorClang:
		return "Clang"
	case VendorMSVC:
		return "MSVC"
	}
	return "Other"
}

// Profile is the classification of a toolchain. It is a comparable value and
// never changes after Detect returns it.
type Profile struct {
	Family Family
	OS     OS
	Libc   Libc
	MinGW  bool
	Vendor Vendor
}

func (p Profile) String() string {
	s := fmt.Sprintf("%s/%s/%s", p.Family, p.OS, p.Libc)
	if p.MinGW {
		s += "/MinGW"
	}
	return s
}
