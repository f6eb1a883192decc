package cmd

import (
	"context"
	"io"
	"os"

	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/toolchain"

	"github.com/spf13/cobra"
)

var flagsCmd = &cobra.Command{
	Use:   "flags [--module warnings|srt|all] [--format text|env|yaml] [--config NAME]",
	Args:  cobra.NoArgs,
	Short: "Prints the resolved flags",
	Long: `Prints the compile and link flags resolved for the detected toolchain.
Multi-config generators get configuration dependent flags as generator
expressions; everything else gets them evaluated for one configuration.`,
	Run: runFlags,
}

var (
	flagsModule string
	flagsFormat string
	flagsConfig string
	flagsMerged bool
)

func init() {
	rootCmd.AddCommand(flagsCmd)
	flagsCmd.Flags().StringVarP(&flagsModule, "module", "m", "all", "Module to resolve: warnings, srt or all")
	flagsCmd.Flags().StringVarP(&flagsFormat, "format", "f", string(toolchain.FormatText), "Output format: text, env or yaml")
	flagsCmd.Flags().StringVarP(&flagsConfig, "config", "c", "", "Build configuration to evaluate flags for")
	flagsCmd.Flags().BoolVar(&flagsMerged, "merged", false, "Merge the bundles into one set of directory defaults")

	flagsCmd.RegisterFlagCompletionFunc("module", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := []string{"all"}
		for _, m := range toolchain.Modules {
			names = append(names, m.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	flagsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(toolchain.FormatText), string(toolchain.FormatEnv), string(toolchain.FormatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})
}

type flagsRequest struct {
	module string
	format string
	config string
	merged bool
}

func runFlags(cmd *cobra.Command, args []string) {
	sess := mustSession()
	req := flagsRequest{module: flagsModule, format: flagsFormat, config: flagsConfig, merged: flagsMerged}
	if err := writeFlags(context.Background(), os.Stdout, sess, req); err != nil {
		log.Fatal("%s.\n", err)
	}
}

func selectModules(name string) ([]toolchain.Module, error) {
	if name == "" || name == "all" {
		return toolchain.Modules, nil
	}
	module, err := toolchain.ParseModule(name)
	if err != nil {
		return nil, err
	}
	return []toolchain.Module{module}, nil
}

func writeFlags(ctx context.Context, w io.Writer, sess *session, req flagsRequest) error {
	modules, err := selectModules(req.module)
	if err != nil {
		return err
	}
	format, err := toolchain.ParseFormat(req.format)
	if err != nil {
		return err
	}

	profile := sess.profile(ctx)
	opts := sess.toolchainOptions()

	bundles := []*toolchain.Bundle{}
	for _, module := range modules {
		bundles = append(bundles, sess.registry.Bundle(module, profile, opts))
	}

	if req.merged {
		defaults := &toolchain.DirectoryDefaults{}
		for _, b := range bundles {
			b.MergeInto(defaults)
		}
		bundles = []*toolchain.Bundle{{Name: "sq::defaults", Profile: profile, Options: opts, Flags: defaults.Flags}}
	}

	config := req.config
	if config == "" {
		config = sess.buildConfig()
	}
	return toolchain.Export(w, bundles, toolchain.ExportOptions{
		Format:      format,
		Config:      config,
		MultiConfig: sess.facts.MultiConfig && req.config == "",
	})
}
