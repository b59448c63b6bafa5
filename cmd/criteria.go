// Package cmd implements the command-line interface for vidq.
package cmd

import (
	"errors"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/vidq-cli/vidq/log"
	"github.com/vidq-cli/vidq/manifest"
	"github.com/vidq-cli/vidq/predicate"
	"github.com/vidq-cli/vidq/recent"
	"github.com/vidq-cli/vidq/stream"
)

// registerManifestFlags attaches the manifest source flags shared by every
// querying command.
func registerManifestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Path to a local manifest file")
	cmd.Flags().StringP("url", "u", "", "URL of a remote manifest")
	cmd.MarkFlagsMutuallyExclusive("input", "url")

	lo.Must0(cmd.RegisterFlagCompletionFunc("url", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return recent.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// loadManifest resolves the manifest from the --input or --url flag.
// Fetched locations are remembered for future flag completion.
func loadManifest(cmd *cobra.Command) (*manifest.Manifest, error) {
	input := lo.Must(cmd.Flags().GetString("input"))
	url := lo.Must(cmd.Flags().GetString("url"))

	switch {
	case input != "":
		return manifest.Load(input)
	case url != "":
		if err := recent.Remember(url, 1); err != nil {
			log.Warnf("failed to remember %s: %v", url, err)
		}
		return manifest.Fetch(url)
	default:
		return nil, errors.New("a manifest is required: pass --input or --url")
	}
}

// registerFilterFlags attaches the stream filtering flags shared by every
// querying command.
func registerFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("res", "", "Keep streams with the given resolution (e.g. 720p)")
	cmd.Flags().Int("fps", 0, "Keep streams with the given frame rate")
	cmd.Flags().String("mime-type", "", "Keep streams with the given MIME type (e.g. video/mp4)")
	cmd.Flags().String("type", "", "Keep streams with the given MIME major type (audio, video)")
	cmd.Flags().String("ext", "", "Keep streams with the given file extension (MIME subtype)")
	cmd.Flags().Int("abr", 0, "Keep streams with the given average bitrate")
	cmd.Flags().String("video-codec", "", "Keep streams with the given video codec")
	cmd.Flags().String("audio-codec", "", "Keep streams with the given audio codec")
	cmd.Flags().Bool("only-audio", false, "Keep streams with an audio track and no video track")
	cmd.Flags().Bool("only-video", false, "Keep streams with a video track and no audio track")
	cmd.Flags().Bool("progressive", false, "Keep streams with both tracks in a single file")
	cmd.Flags().Bool("adaptive", false, "Keep streams with separately delivered tracks")
	cmd.Flags().StringSlice("where", []string{}, "Lua filter script defining Keep(stream); repeatable, ANDed in order")
}

// criteriaFromFlags composes the filter criteria from the command's flags.
// Only flags explicitly set contribute a constraint.
func criteriaFromFlags(cmd *cobra.Command) (stream.Filter, error) {
	var criteria stream.Filter

	if cmd.Flags().Changed("res") {
		criteria.Resolution = mo.Some(lo.Must(cmd.Flags().GetString("res")))
	}
	if cmd.Flags().Changed("fps") {
		criteria.FPS = mo.Some(lo.Must(cmd.Flags().GetInt("fps")))
	}
	if cmd.Flags().Changed("mime-type") {
		criteria.MimeType = mo.Some(lo.Must(cmd.Flags().GetString("mime-type")))
	}
	if cmd.Flags().Changed("type") {
		criteria.Type = mo.Some(lo.Must(cmd.Flags().GetString("type")))
	}
	if cmd.Flags().Changed("ext") {
		criteria.FileExtension = mo.Some(lo.Must(cmd.Flags().GetString("ext")))
	}
	if cmd.Flags().Changed("abr") {
		criteria.ABR = mo.Some(lo.Must(cmd.Flags().GetInt("abr")))
	}
	if cmd.Flags().Changed("video-codec") {
		criteria.VideoCodec = mo.Some(lo.Must(cmd.Flags().GetString("video-codec")))
	}
	if cmd.Flags().Changed("audio-codec") {
		criteria.AudioCodec = mo.Some(lo.Must(cmd.Flags().GetString("audio-codec")))
	}

	criteria.OnlyAudio = lo.Must(cmd.Flags().GetBool("only-audio"))
	criteria.OnlyVideo = lo.Must(cmd.Flags().GetBool("only-video"))
	criteria.Progressive = lo.Must(cmd.Flags().GetBool("progressive"))
	criteria.Adaptive = lo.Must(cmd.Flags().GetBool("adaptive"))

	for _, script := range lo.Must(cmd.Flags().GetStringSlice("where")) {
		keep, err := predicate.FromFile(script)
		if err != nil {
			return criteria, err
		}
		criteria.CustomPredicates = append(criteria.CustomPredicates, keep)
	}

	return criteria, nil
}

// registerOrderFlags attaches the ordering flags shared by listing commands.
func registerOrderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("order-by", "o", "", "Sort streams ascending by the named attribute")
	cmd.Flags().BoolP("desc", "d", false, "Reverse the order (descending when combined with --order-by)")

	lo.Must0(cmd.RegisterFlagCompletionFunc("order-by", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return stream.Attributes(), cobra.ShellCompDirectiveNoFileComp
	}))
}
