package toolchain

// MSVC dialect. C4289 (loop variable used outside the loop) is raised to an
// error; everything else is a level 1 warning.
var msvcWarnings = []string{
	"/W4",
	"/w14242",
	"/w14254",
	"/w14263",
	"/w14265",
	"/w14287",
	"/we4289",
	"/w14296",
	"/w14311",
	"/w14545",
	"/w14546",
	"/w14547",
	"/w14549",
	"/w14555",
	"/w14619",
	"/w14640",
	"/w14826",
	"/w14905",
	"/w14906",
	"/w14928",
}

var msvcCxxWarnings = []string{
	"/permissive-",
}

// GNU dialect, shared by gcc and clang.
var gnuWarnings = []string{
	"-Wall",
	"-Wextra",
	"-Wshadow",
	"-Wcast-align",
	"-Wunused",
	"-Wpedantic",
	"-Wconversion",
	"-Wsign-conversion",
	"-Wnull-dereference",
	"-Wdouble-promotion",
	"-Wformat=2",
	"-Wimplicit-fallthrough",
}

var gnuCxxWarnings = []string{
	"-Wnon-virtual-dtor",
	"-Wold-style-cast",
	"-Woverloaded-virtual",
}

var clangWarnings = []string{
	"-Wimplicit-float-conversion",
}

var gccWarnings = []string{
	"-Wduplicated-cond",
	"-Wduplicated-branches",
	"-Wlogical-op",
	"-Wmissing-declarations",
}

func resolveWarnings(profile Profile) FlagSet {
	var c, cxx []string

	switch {
	case profile.Family.MSVCDialect():
		c = append(c, msvcWarnings...)
		cxx = append(cxx, msvcWarnings...)
		cxx = append(cxx, msvcCxxWarnings...)
	case profile.Family.GNUDialect():
		c = append(c, gnuWarnings...)
		cxx = append(cxx, gnuWarnings...)
		cxx = append(cxx, gnuCxxWarnings...)

		var extra []string
		switch profile.Vendor {
		case VendorClang:
			extra = clangWarnings
		case VendorGNU:
			extra = gccWarnings
		}
		c = append(c, extra...)
		cxx = append(cxx, extra...)
	default:
		return FlagSet{}
	}

	return FlagSet{
		CompileC:   literals(c...),
		CompileCxx: literals(cxx...),
	}
}
