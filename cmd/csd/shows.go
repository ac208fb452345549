package main

import (
	"fmt"
	"io"
	"os"

	"csd/internal/models"
	"csd/internal/providers"
	"csd/internal/schedule"
	"csd/internal/structures"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ShowsCmd returns the command listing the shows of the saved schedule.
func ShowsCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shows",
		Short: "List scheduled shows and their comment setting",
		Long: `List every show in the saved schedule with its comment setting.

The schedule file is read as it is on disk; no source fetch is made.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := providers.NewConfigProvider(flags)
			if err != nil {
				return err
			}
			grid, corrupt, err := schedule.LoadGrid(conf.Schedule.FilePath)
			if err != nil {
				return err
			}
			if corrupt {
				fmt.Fprintf(os.Stderr, "%s %s is unreadable, showing an empty schedule\n",
					color.New(color.FgYellow).Sprint("warning:"), conf.Schedule.FilePath)
			}
			printShows(cmd.OutOrStdout(), grid, conf.Schedule.DefaultCommentSetting)
			return nil
		},
	}
}

func printShows(w io.Writer, grid models.ScheduleGrid, defaultSetting bool) {
	shows := grid.Shows()
	if len(shows) == 0 {
		fmt.Fprintln(w, "No shows scheduled.")
		return
	}
	for _, show := range shows {
		enabled, ok := grid.CommentSetting(show)
		if !ok {
			enabled = defaultSetting
		}
		fmt.Fprintf(w, "%s  %s\n", settingLabel(enabled), show)
	}
}

func settingLabel(enabled bool) string {
	if enabled {
		return color.New(color.FgGreen).Sprint("enabled ")
	}
	return color.New(color.FgRed).Sprint("disabled")
}
