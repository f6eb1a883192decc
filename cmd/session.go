package cmd

import (
	"context"
	"strings"

	"github.com/daedaleanai/sqcfg/config"
	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/options"
	"github.com/daedaleanai/sqcfg/toolchain"
	"github.com/daedaleanai/sqcfg/util"
)

var (
	factsFile   string
	definitions []string
)

// session holds everything one sqcfg invocation resolves against.
type session struct {
	cfg      config.Config
	facts    toolchain.BuildEnvironmentFacts
	options  *options.Set
	detector *toolchain.Detector
	registry *toolchain.Registry
}

func newSession(cfg config.Config, environment map[string]string, factsFile string, definitions []string) (*session, error) {
	facts := toolchain.FactsFromEnvironment(environment).Merge(cfg.Facts)
	if factsFile != "" {
		fileFacts, err := toolchain.LoadFacts(factsFile)
		if err != nil {
			return nil, err
		}
		facts = facts.Merge(fileFacts)
	}
	log.Debug("Build environment facts: %+v\n", facts)

	cache, err := options.LoadCache(cfg.CacheFile)
	if err != nil {
		return nil, err
	}
	defs, err := options.ParseDefinitions(definitions)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		facts:    facts,
		options:  options.NewSet(cfg.Options, environmentOptions(environment), cache, defs),
		detector: toolchain.NewDetector(toolchain.CompilerProber{Timeout: cfg.ProbeTimeout}),
		registry: toolchain.NewRegistry(),
	}, nil
}

func mustSession() *session {
	sess, err := newSession(config.GetConfig(), util.Environment(), factsFile, definitions)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	return sess
}

// environmentOptions picks option values from SQ_ prefixed variables.
func environmentOptions(environment map[string]string) map[string]string {
	values := map[string]string{}
	for name, value := range environment {
		if strings.HasPrefix(name, "SQ_") {
			values[name] = value
		}
	}
	return values
}

func (s *session) profile(ctx context.Context) toolchain.Profile {
	if profile, ok := s.detector.Cached(s.facts); ok {
		return profile
	}
	if !log.Verbose {
		log.Spinner.Suffix = " Detecting toolchain"
		log.Spinner.Start()
		defer log.Spinner.Stop()
	}
	return s.detector.Detect(ctx, s.facts)
}

func (s *session) toolchainOptions() toolchain.Options {
	return options.ToolchainOptions(s.options, s.facts)
}

// buildConfig is the configuration flags are evaluated for. The build type
// from the facts is the default; options override it.
func (s *session) buildConfig() string {
	opt := options.BuildConfig
	if buildType := s.facts.BuildType; buildType != "" {
		opt.DefaultFn = func() string { return buildType }
	}
	return s.options.String(opt)
}
