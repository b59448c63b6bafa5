// Package cmd implements the command-line interface for vidq.
package cmd

import (
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/vidq-cli/vidq/filesystem"
	"github.com/vidq-cli/vidq/inline"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	registerManifestFlags(inlineCmd)
	registerFilterFlags(inlineCmd)
	registerOrderFlags(inlineCmd)

	inlineCmd.Flags().StringP("select", "s", "", "Criteria for selecting a single stream from the filtered result")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().StringP("output", "O", "", "Specify a file path to write the command output")
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Run one query against a manifest and print the result, one URL per line.

Stream selectors:
  first - first stream of the result
  last - last stream of the result
  best - highest stream by the configured order attribute
  worst - lowest stream by the configured order attribute
  itag=[number] - stream with the given format identifier
  [number] - stream at the given index (starting from 0)

When using the json flag the selector could be omitted. That way, every
matching stream is included in the output`,
	PreRun: func(cmd *cobra.Command, args []string) {
		json, _ := cmd.Flags().GetBool("json")

		if !json {
			lo.Must0(cmd.MarkFlagRequired("select"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		m, err := loadManifest(cmd)
		handleErr(err)

		criteria, err := criteriaFromFlags(cmd)
		handleErr(err)

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		selectFlag := lo.Must(cmd.Flags().GetString("select"))
		selector := mo.None[inline.Selector]()
		if selectFlag != "" {
			fn, err := inline.ParseSelector(selectFlag)
			handleErr(err)
			selector = mo.Some(fn)
		}

		orderBy := mo.None[string]()
		if attr := lo.Must(cmd.Flags().GetString("order-by")); attr != "" {
			orderBy = mo.Some(attr)
		}

		options := &inline.Options{
			Out:        writer,
			Manifest:   m,
			Criteria:   criteria,
			OrderBy:    orderBy,
			Descending: lo.Must(cmd.Flags().GetBool("desc")),
			Selector:   selector,
			Json:       lo.Must(cmd.Flags().GetBool("json")),
		}

		handleErr(inline.Run(options))
	},
}
