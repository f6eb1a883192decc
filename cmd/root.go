package cmd

import (
	"os"

	"github.com/daedaleanai/sqcfg/log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sqcfg",
	Short: "Toolchain detection and flag resolution for C/C++ builds",
	Long: `sqcfg detects the C/C++ toolchain of a build environment (compiler vendor,
frontend variant, target system and C library) and resolves the warning flags
and static runtime flags a build should pass for it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&factsFile, "facts", "", "Read build environment facts from a YAML or TOML file")
	rootCmd.PersistentFlags().StringArrayVarP(&definitions, "define", "D", nil, "Set an option, e.g. -D SQ_SRT_LINUX_STATIC=ON")
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
