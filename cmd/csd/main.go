package main

import (
	"fmt"
	"os"

	"csd/internal/di"
	"csd/internal/structures"

	"github.com/spf13/cobra"
)

func main() {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:   "csd",
		Short: "Comment server for a live radio stream",
		Long: `csd serves the comment widget of a radio station. It keeps the weekly
schedule in step with the station's source schedule, watches the stream
status feed to find the live show and stores comments per show.

Running csd without a subcommand is the same as "csd serve".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flags)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to the console")

	rootCmd.AddCommand(ServeCmd(flags))
	rootCmd.AddCommand(ShowsCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ServeCmd returns the command running the HTTP server and periodic jobs.
func ServeCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the comment server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flags)
		},
	}
}

func serve(flags *structures.CliFlags) error {
	app, err := di.InitApp(flags)
	if err != nil {
		return err
	}
	return app.Run()
}
