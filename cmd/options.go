package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/options"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options [--persist]",
	Args:  cobra.NoArgs,
	Short: "Lists all options",
	Long:  `Lists all options and optionally persists their current values to the option cache.`,
	Run:   runOptions,
}

var persistOptions bool

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&persistOptions, "persist", false, "Write the current option values to the option cache")
}

func runOptions(cmd *cobra.Command, args []string) {
	sess := mustSession()
	if err := writeOptions(os.Stdout, sess); err != nil {
		log.Fatal("%s.\n", err)
	}
	if persistOptions {
		if err := options.SaveCache(sess.cfg.CacheFile, sess.options.Values()); err != nil {
			log.Fatal("%s.\n", err)
		}
		log.Success("Persisted options to '%s'.\n", sess.cfg.CacheFile)
	}
}

func writeOptions(w io.Writer, sess *session) error {
	// Reading the options registers them with the set.
	sess.toolchainOptions()
	sess.buildConfig()

	data := pterm.TableData{{"Option", "Value", "Allowed", "Description"}}
	for _, info := range sess.options.Info() {
		data = append(data, []string{info.Name, info.Value, strings.Join(info.AllowedValues, "|"), info.Description})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("rendering options: %w", err)
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
