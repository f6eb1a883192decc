package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daedaleanai/sqcfg/config"
	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/options"
	"github.com/daedaleanai/sqcfg/toolchain"
)

var msvcFacts = toolchain.BuildEnvironmentFacts{
	CompilerID: "MSVC",
	Compiler:   "cl.exe",
	SystemName: "Windows",
}

var muslFacts = toolchain.BuildEnvironmentFacts{
	CompilerID: "GNU",
	Compiler:   "/usr/bin/x86_64-linux-musl-gcc",
	SystemName: "Linux",
}

func testSession(t *testing.T, facts toolchain.BuildEnvironmentFacts, values map[string]string) *session {
	t.Helper()
	log.Verbose = true
	return &session{
		cfg:      config.Config{CacheFile: filepath.Join(t.TempDir(), "SQCache.yaml")},
		facts:    facts,
		options:  options.NewSet(values),
		detector: toolchain.NewDetector(toolchain.StaticProber(toolchain.LibcMusl)),
		registry: toolchain.NewRegistry(),
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &logs
}

func TestWriteFlagsWarnings(t *testing.T) {
	sess := testSession(t, msvcFacts, nil)

	var out bytes.Buffer
	err := writeFlags(context.Background(), &out, sess, flagsRequest{module: "warnings", format: "text"})
	require.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "# sq::warnings (MSVC/Windows/MSVCRT)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "C: /W4 "), lines[1])
	assert.Contains(t, lines[2], "/permissive-")
	assert.Equal(t, "LINK: ", lines[3])
}

func TestWriteFlagsRuntimeProperty(t *testing.T) {
	facts := msvcFacts
	facts.GeneratorVersion = "3.21.0"
	facts.MultiConfig = true
	sess := testSession(t, facts, nil)

	var out bytes.Buffer
	err := writeFlags(context.Background(), &out, sess, flagsRequest{module: "srt", format: "text"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "PROPERTY MSVC_RUNTIME_LIBRARY: MultiThreaded$<$<CONFIG:Debug>:Debug>\n")

	// An explicit configuration evaluates the generator expressions.
	out.Reset()
	err = writeFlags(context.Background(), &out, sess, flagsRequest{module: "srt", format: "text", config: "Debug"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "PROPERTY MSVC_RUNTIME_LIBRARY: MultiThreadedDebug\n")
}

func TestWriteFlagsRuntimeFallback(t *testing.T) {
	sess := testSession(t, msvcFacts, map[string]string{"SQ_SRT_MSVC_RUNTIME_PROPERTY": "OFF"})

	var out bytes.Buffer
	err := writeFlags(context.Background(), &out, sess, flagsRequest{module: "srt", format: "env"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "CFLAGS=\"/MT\"\n")
}

func TestWriteFlagsBuildTypeDefault(t *testing.T) {
	facts := msvcFacts
	facts.BuildType = "Debug"
	sess := testSession(t, facts, map[string]string{"SQ_SRT_MSVC_RUNTIME_PROPERTY": "OFF"})

	var out bytes.Buffer
	err := writeFlags(context.Background(), &out, sess, flagsRequest{module: "srt", format: "env"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "CFLAGS=\"/MTd\"\n")
}

func TestWriteFlagsMerged(t *testing.T) {
	sess := testSession(t, muslFacts, nil)

	var out bytes.Buffer
	err := writeFlags(context.Background(), &out, sess, flagsRequest{module: "all", format: "text", merged: true})
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "# sq::defaults (GNU/Linux/Musl)\n"), text)
	assert.Contains(t, text, "LINK: -static\n")
	assert.Contains(t, text, "-Wall")
	assert.Equal(t, 1, strings.Count(text, "# "))
}

func TestWriteFlagsErrors(t *testing.T) {
	sess := testSession(t, muslFacts, nil)

	err := writeFlags(context.Background(), &bytes.Buffer{}, sess, flagsRequest{module: "sanitizers", format: "text"})
	assert.ErrorIs(t, err, toolchain.ErrUnknownModule)

	err = writeFlags(context.Background(), &bytes.Buffer{}, sess, flagsRequest{module: "all", format: "xml"})
	assert.ErrorIs(t, err, toolchain.ErrUnknownFormat)
}

func TestWriteBundleList(t *testing.T) {
	tests := []struct {
		name  string
		facts toolchain.BuildEnvironmentFacts
		state string
	}{
		{"musl", muslFacts, "active"},
		{"unsupported system", toolchain.BuildEnvironmentFacts{CompilerID: "GNU", SystemName: "Darwin"}, "empty"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sess := testSession(t, test.facts, nil)

			var out bytes.Buffer
			require.NoError(t, writeBundleList(context.Background(), &out, sess))

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, []string{"sq::srt", test.state}, dropProfile(lines[0]))
			assert.Equal(t, []string{"sq::warnings", test.state}, dropProfile(lines[1]))
		})
	}
}

func dropProfile(line string) []string {
	fields := strings.Split(line, "\t")
	return []string{fields[0], fields[2]}
}

func TestWriteOptions(t *testing.T) {
	sess := testSession(t, muslFacts, map[string]string{"SQ_SRT_LINUX_STATIC": "yes"})

	var out bytes.Buffer
	require.NoError(t, writeOptions(&out, sess))
	text := out.String()
	assert.Contains(t, text, "SQ_SRT_LINUX_STATIC")
	assert.Contains(t, text, "SQ_SRT_MSVC_RUNTIME_PROPERTY")
	assert.Contains(t, text, "SQ_BUILD_CONFIG")
	assert.Equal(t, "ON", sess.options.Values()["SQ_SRT_LINUX_STATIC"])
}

func TestNewSessionLayers(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "SQCache.yaml")
	require.NoError(t, options.SaveCache(cache, map[string]string{"SQ_SRT_LINUX_STATIC": "ON", "SQ_BUILD_CONFIG": "MinSizeRel"}))

	factsPath := filepath.Join(dir, "facts.toml")
	require.NoError(t, os.WriteFile(factsPath, []byte("compiler_id = \"Clang\"\nsystem_name = \"Windows\"\nfrontend_variant = \"MSVC\"\n"), 0600))

	cfg := config.Config{CacheFile: cache, Options: map[string]string{"SQ_BUILD_CONFIG": "Debug"}}
	environment := map[string]string{"CC": "gcc", "SQ_SRT_LINUX_STATIC": "OFF", "SQ_BUILD_CONFIG": "Release"}

	sess, err := newSession(cfg, environment, factsPath, []string{"SQ_SRT_LINUX_STATIC:BOOL=OFF"})
	require.NoError(t, err)

	assert.Equal(t, "Clang", sess.facts.CompilerID)
	assert.Equal(t, "MSVC", sess.facts.FrontendVariant)
	assert.Equal(t, "MinSizeRel", sess.buildConfig())
	assert.False(t, sess.options.Bool(options.LinuxStatic))
}

func TestEnvironmentOptions(t *testing.T) {
	values := environmentOptions(map[string]string{"SQ_SRT_LINUX_STATIC": "ON", "CC": "gcc", "SQCFG_CONFIG_DIR": "/tmp"})
	assert.Equal(t, map[string]string{"SQ_SRT_LINUX_STATIC": "ON"}, values)
}

func TestWriteOptionsReportsInvalidValues(t *testing.T) {
	logs := captureLog(t)
	sess := testSession(t, muslFacts, map[string]string{"SQ_SRT_MSVC_RUNTIME_PROPERTY": "sometimes"})

	require.NoError(t, writeOptions(&bytes.Buffer{}, sess))
	assert.Contains(t, logs.String(), "Ignoring option 'SQ_SRT_MSVC_RUNTIME_PROPERTY'")
	assert.Equal(t, options.Auto, sess.options.Values()["SQ_SRT_MSVC_RUNTIME_PROPERTY"])
}
