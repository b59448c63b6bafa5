// Package cmd implements the command-line interface for vidq.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidq-cli/vidq/inline"
	"github.com/vidq-cli/vidq/manifest"
	"github.com/vidq-cli/vidq/stream"
	"github.com/vidq-cli/vidq/style"
	"github.com/vidq-cli/vidq/util"
)

func init() {
	rootCmd.AddCommand(formatsCmd)

	registerManifestFlags(formatsCmd)
	registerFilterFlags(formatsCmd)
	registerOrderFlags(formatsCmd)

	formatsCmd.Flags().Int("itag", 0, "Show only the stream with the given format identifier")
	formatsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	formatsCmd.Flags().Bool("json-schema", false, "Print the JSON schema of the output and exit")

	formatsCmd.SetOut(os.Stdout)
}

// formatsCmd lists the stream formats of a video after filtering and ordering.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the available stream formats of a video",
	Long: `List the available stream formats of a video manifest.

The result can be narrowed with the filter flags (all constraints are ANDed),
sorted with --order-by and reversed with --desc. Sortable attributes:

  ` + fmt.Sprint(stream.Attributes()),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("json-schema")) {
			schema := jsonschema.Reflect(&inline.Output{})
			data, err := json.MarshalIndent(schema, "", "  ")
			handleErr(err)
			cmd.Println(string(data))
			return
		}

		m, err := loadManifest(cmd)
		handleErr(err)

		criteria, err := criteriaFromFlags(cmd)
		handleErr(err)

		q := m.Query().Filter(criteria)

		if cmd.Flags().Changed("itag") {
			itag := lo.Must(cmd.Flags().GetInt("itag"))
			s, ok := q.GetByItag(itag).Get()
			if !ok {
				handleErr(fmt.Errorf("no stream with itag %d", itag))
			}
			q = stream.NewQuery([]*stream.Stream{s})
		}

		if attr := lo.Must(cmd.Flags().GetString("order-by")); attr != "" {
			q, err = q.OrderBy(attr)
			handleErr(err)
		}
		if lo.Must(cmd.Flags().GetBool("desc")) {
			q = q.Desc()
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(inline.Run(&inline.Options{
				Out:      cmd.OutOrStdout(),
				Manifest: withStreams(m, q.All()),
				Json:     true,
			}))
			return
		}

		printStreams(cmd, m.Title, q)
	},
}

func printStreams(cmd *cobra.Command, title string, q *stream.Query) {
	cmd.Println(style.Title(title))
	cmd.Println()

	for _, s := range q.All() {
		line := fmt.Sprintf(
			"  %s %s %s",
			style.Bold(fmt.Sprintf("%3d", s.Itag)),
			style.Fg(style.AccentColor)(fmt.Sprintf("%-11s", s.MimeType)),
			fmt.Sprintf("%-10s", s.Label()),
		)

		switch {
		case s.IsProgressive():
			line += style.Fg(style.SuccessColor)(" progressive")
		case s.IncludesAudioTrack:
			line += style.Faint(" audio-only")
		default:
			line += style.Faint(" video-only")
		}

		if s.FileSize > 0 {
			line += " " + style.Faint(util.HumanSize(s.FileSize))
		}

		cmd.Println(line)
	}

	cmd.Println()
	cmd.Println(style.Faint(util.Quantify(q.Count(), "stream", "streams")))
}

// withStreams keeps the manifest metadata while swapping the stream
// sequence for the query result.
func withStreams(m *manifest.Manifest, streams []*stream.Stream) *manifest.Manifest {
	copied := *m
	copied.Streams = streams
	return &copied
}
