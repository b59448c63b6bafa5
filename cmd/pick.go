// Package cmd implements the command-line interface for vidq.
package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/inline"
	"github.com/vidq-cli/vidq/key"
	"github.com/vidq-cli/vidq/mini"
)

func init() {
	rootCmd.AddCommand(pickCmd)

	registerManifestFlags(pickCmd)
	registerFilterFlags(pickCmd)

	pickCmd.Flags().Int("itag", 0, "Pick the stream with the given format identifier")
	pickCmd.Flags().BoolP("best", "b", false, "Pick the highest stream by the configured order attribute")
	pickCmd.Flags().BoolP("worst", "w", false, "Pick the lowest stream by the configured order attribute")
	pickCmd.Flags().Bool("first", false, "Pick the first matching stream")
	pickCmd.Flags().Bool("last", false, "Pick the last matching stream")
	pickCmd.Flags().BoolP("mini", "m", false, "Pick interactively with a minimal prompt")

	pickCmd.MarkFlagsMutuallyExclusive("itag", "best", "worst", "first", "last", "mini")
}

// pickCmd reduces a filtered manifest to a single stream and prints its URL.
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a single stream and print its URL",
	Long: `Pick a single stream from a video manifest and print its URL.

The manifest is narrowed with the filter flags first, then one of the
selection flags decides which of the remaining streams wins. Without a
selection flag the first matching stream is picked.`,
	Run: func(cmd *cobra.Command, args []string) {
		m, err := loadManifest(cmd)
		handleErr(err)

		criteria, err := criteriaFromFlags(cmd)
		handleErr(err)

		if viper.GetBool(key.SelectProgressive) {
			criteria.Progressive = true
		}

		if lo.Must(cmd.Flags().GetBool("mini")) {
			s, err := mini.Run(&mini.Options{Manifest: m, Criteria: criteria})
			handleErr(err)
			fmt.Println(s.URL)
			return
		}

		selector, err := inline.ParseSelector(selectorExpr(cmd))
		handleErr(err)

		picked, err := selector(m.Query().Filter(criteria))
		handleErr(err)

		s, ok := picked.Get()
		if !ok {
			handleErr(errors.New("no stream matches the given criteria"))
		}

		fmt.Println(s.URL)
	},
}

// selectorExpr translates the selection flags into a selector expression.
func selectorExpr(cmd *cobra.Command) string {
	switch {
	case cmd.Flags().Changed("itag"):
		return "itag=" + strconv.Itoa(lo.Must(cmd.Flags().GetInt("itag")))
	case lo.Must(cmd.Flags().GetBool("best")):
		return "best"
	case lo.Must(cmd.Flags().GetBool("worst")):
		return "worst"
	case lo.Must(cmd.Flags().GetBool("last")):
		return "last"
	default:
		return "first"
	}
}
