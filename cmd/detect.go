package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/toolchain"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Args:  cobra.NoArgs,
	Short: "Prints the detected toolchain profile",
	Long: `Prints the toolchain profile detected from the build environment facts.
On Linux this compiles a small probe to find out which C library is used.`,
	Run: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) {
	sess := mustSession()
	if err := writeProfile(os.Stdout, sess.facts, sess.profile(context.Background())); err != nil {
		log.Fatal("%s.\n", err)
	}
}

func writeProfile(w io.Writer, facts toolchain.BuildEnvironmentFacts, profile toolchain.Profile) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Fact", "Value"},
		{"Compiler", facts.Compiler},
		{"Family", profile.Family.String()},
		{"Vendor", profile.Vendor.String()},
		{"OS", profile.OS.String()},
		{"Libc", profile.Libc.String()},
		{"MinGW", strconv.FormatBool(profile.MinGW)},
	}).Srender()
	if err != nil {
		return fmt.Errorf("rendering profile: %w", err)
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
