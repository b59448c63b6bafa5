// Package cmd implements the command-line interface for vidq.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/constant"
	"github.com/vidq-cli/vidq/icon"
	"github.com/vidq-cli/vidq/key"
	"github.com/vidq-cli/vidq/log"
	"github.com/vidq-cli/vidq/style"
	"github.com/vidq-cli/vidq/tui"
	"github.com/vidq-cli/vidq/util"
	"github.com/vidq-cli/vidq/version"
	"github.com/vidq-cli/vidq/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	registerManifestFlags(rootCmd)
	registerFilterFlags(rootCmd)

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the vidq application.
var rootCmd = &cobra.Command{
	Use:   constant.Vidq,
	Short: "A minimalist command-line interface for inspecting and selecting media stream formats",
	Long: style.Title(constant.Vidq) + "\n" +
		style.Italic("  - query, filter and pick media stream formats from a video's manifest"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		m, err := loadManifest(cmd)
		handleErr(err)

		criteria, err := criteriaFromFlags(cmd)
		handleErr(err)

		selected, err := tui.Run(&tui.Options{Manifest: m, Criteria: criteria})
		handleErr(err)

		if s, ok := selected.Get(); ok {
			fmt.Println(s.URL)
		}
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
