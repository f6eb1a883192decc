package toolchain

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"
)

func TestExportText(t *testing.T) {
	r := NewRegistry()
	bundles := []*Bundle{r.Bundle(StaticRuntime, gccGlibcProfile, Options{LinuxStatic: true})}

	var buf bytes.Buffer
	if err := Export(&buf, bundles, ExportOptions{Format: FormatText, Config: "Release"}); err != nil {
		t.Fatal(err)
	}

	want := `# sq::srt (GNU/Linux/Glibc)
C: 
CXX: 
LINK: -static-libstdc++ -static-libgcc
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("text export (-want +got):\n%s", diff)
	}
}

func TestExportEnvEvaluatesConditionals(t *testing.T) {
	r := NewRegistry()
	bundles := []*Bundle{
		r.Bundle(Warnings, msvcProfile, Options{}),
		r.Bundle(StaticRuntime, msvcProfile, Options{RuntimeProperty: true}),
	}

	var buf bytes.Buffer
	if err := Export(&buf, bundles, ExportOptions{Format: FormatEnv, Config: "Debug", MultiConfig: true}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if strings.Contains(out, "$<") {
		t.Fatalf("env export contains generator expressions:\n%s", out)
	}
	if !strings.Contains(out, "CXXFLAGS=\"/W4 ") || !strings.Contains(out, "# MSVC_RUNTIME_LIBRARY=MultiThreadedDebug\n") {
		t.Fatalf("unexpected env export:\n%s", out)
	}
}

func TestExportYAMLRendersForMultiConfig(t *testing.T) {
	r := NewRegistry()
	bundles := []*Bundle{r.Bundle(StaticRuntime, clangOnMSVCProfile, Options{})}

	var buf bytes.Buffer
	if err := Export(&buf, bundles, ExportOptions{Format: FormatYAML, MultiConfig: true}); err != nil {
		t.Fatal(err)
	}

	var got []yamlBundle
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "sq::srt" {
		t.Fatalf("unexpected bundles: %+v", got)
	}
	if diff := cmp.Diff(bundles[0].Flags.Render(), got[0].Flags); diff != "" {
		t.Fatalf("yaml export (-want +got):\n%s", diff)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	if err := Export(&bytes.Buffer{}, nil, ExportOptions{Format: "cmake"}); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("got %v, want ErrUnknownFormat", err)
	}
	if _, err := ParseFormat("YAML"); err != nil {
		t.Fatalf("ParseFormat(YAML): %s", err)
	}
}
