package toolchain

const debugConfig = "Debug"

// MSVCRuntimeProperty is the build property selecting the MSVC runtime library.
const MSVCRuntimeProperty = "MSVC_RUNTIME_LIBRARY"

// Dynamic CRT import libraries, release and debug, for the C runtime, the C++
// runtime and the universal CRT.
var dynamicCRTLibs = []string{
	"msvcrt.lib",
	"msvcrtd.lib",
	"msvcprt.lib",
	"msvcprtd.lib",
	"ucrt.lib",
	"ucrtd.lib",
}

var staticCRTLibsDebug = []string{
	"libcmtd.lib",
	"libcpmtd.lib",
	"libucrtd.lib",
}

var staticCRTLibsRelease = []string{
	"libcmt.lib",
	"libcpmt.lib",
	"libucrt.lib",
}

const crtCompatLib = "oldnames.lib"

const (
	wholeArchiveOpen  = "-Wl,-Bstatic,--whole-archive"
	wholeArchiveClose = "-Wl,--no-whole-archive,-Bdynamic"
	threadSupportLib  = "-lwinpthread"
)

var staticLibstdcxx = []string{
	"-static-libstdc++",
	"-static-libgcc",
}

func resolveStaticRuntime(profile Profile, opts Options) FlagSet {
	switch profile.Family {
	case FamilyMSVC, FamilyClangMSVCFrontend:
		return msvcStaticRuntime(opts)
	case FamilyClangGNUFrontendOnMSVCTarget:
		return clangGNUOnMSVCStaticRuntime()
	}

	if profile.MinGW {
		return minGWStaticRuntime()
	}

	if profile.OS == OSLinux && profile.Family.GNUDialect() {
		if profile.Libc == LibcMusl {
			return FlagSet{Link: literals("-static")}
		}
		if opts.LinuxStatic {
			return FlagSet{Link: literals(staticLibstdcxx...)}
		}
	}
	return FlagSet{}
}

func msvcStaticRuntime(opts Options) FlagSet {
	if opts.RuntimeProperty {
		return FlagSet{
			Properties: []Property{{
				Name:  MSVCRuntimeProperty,
				Value: []Item{Literal("MultiThreaded"), OnlyIn(debugConfig, "Debug")},
			}},
		}
	}

	flags := []Item{OnlyIn(debugConfig, "/MTd"), ExceptIn(debugConfig, "/MT")}
	return FlagSet{
		CompileC:   flags,
		CompileCxx: flags,
	}
}

// The GNU style clang driver cannot use the runtime property, so the static
// CRT is selected by hand. All dynamic CRT exclusions come before any static
// CRT inclusion.
func clangGNUOnMSVCStaticRuntime() FlagSet {
	compile := []Item{Literal("-D_MT"), OnlyIn(debugConfig, "-D_DEBUG")}

	var link []Item
	for _, lib := range dynamicCRTLibs {
		link = append(link, Literal("-Wl,/NODEFAULTLIB:"+lib))
	}
	for _, lib := range staticCRTLibsDebug {
		link = append(link, OnlyIn(debugConfig, "-Wl,/DEFAULTLIB:"+lib))
	}
	for _, lib := range staticCRTLibsRelease {
		link = append(link, ExceptIn(debugConfig, "-Wl,/DEFAULTLIB:"+lib))
	}
	link = append(link, Literal("-Wl,/DEFAULTLIB:"+crtCompatLib))

	return FlagSet{
		CompileC:   compile,
		CompileCxx: compile,
		Link:       link,
	}
}

// winpthread is pulled in whole so its weak thread init symbols survive.
// The async I/O libraries stay dynamic and are not named here.
func minGWStaticRuntime() FlagSet {
	link := literals(staticLibstdcxx...)
	link = append(link, literals(wholeArchiveOpen, threadSupportLib, wholeArchiveClose)...)
	return FlagSet{Link: link}
}
