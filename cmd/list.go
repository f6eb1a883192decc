package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/toolchain"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "Lists all bundles",
	Long:  `Lists all bundles and whether they carry flags for the detected toolchain.`,
	Run:   runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	sess := mustSession()
	if err := writeBundleList(context.Background(), os.Stdout, sess); err != nil {
		log.Fatal("%s.\n", err)
	}
}

func writeBundleList(ctx context.Context, w io.Writer, sess *session) error {
	profile := sess.profile(ctx)
	opts := sess.toolchainOptions()
	for _, module := range toolchain.Modules {
		sess.registry.Bundle(module, profile, opts)
	}

	for _, b := range sess.registry.All() {
		state := "active"
		if b.Flags.Empty() {
			state = "empty"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, b.Profile, state); err != nil {
			return err
		}
	}
	return nil
}
