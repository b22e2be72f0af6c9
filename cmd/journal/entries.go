package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"journal-go/internal/render"
)

var writeCmd = &cobra.Command{
	Use:   "write [TEXT...]",
	Short: "Write or replace today's entry",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		content, err := readEntryContent(cmd, args)
		if err != nil {
			return err
		}

		a, err := newApp("write")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		entry, created, err := a.WriteToday(cmd.Context(), content)
		if err != nil {
			return err
		}

		verb := "Updated"
		if created {
			verb = "Saved"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s entry for %s.\n\n", verb, entry.Date)
		return render.Entry(cmd.OutOrStdout(), entry)
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entry",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp("today")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		entry, err := a.Today(cmd.Context())
		if err != nil {
			return err
		}
		if entry == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing written today. Try `journal write` or `journal starter`.")
			return nil
		}
		if err := render.Entry(cmd.OutOrStdout(), entry); err != nil {
			return err
		}

		avg, err := a.AverageSentiment(cmd.Context(), 7)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n7-day average: %s\n", render.Score(avg))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp("list")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		entries, err := a.Entries(cmd.Context())
		if err != nil {
			return err
		}
		return render.Entries(cmd.OutOrStdout(), entries)
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Summarize mood over a window of days",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		window, _ := cmd.Flags().GetInt("window")

		a, err := newApp("trends")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		summary, err := a.Trends(cmd.Context(), window)
		if err != nil {
			return err
		}
		return render.Trends(cmd.OutOrStdout(), summary)
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show entries as a mood calendar",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp("calendar")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		grid, err := a.Calendar(cmd.Context())
		if err != nil {
			return err
		}
		return render.Calendar(cmd.OutOrStdout(), grid)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show the most common life areas",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("tags")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		tags, err := a.CommonTags(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return render.Tags(cmd.OutOrStdout(), tags)
	},
}

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Get a reflection question about today's entry",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp("reflect")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		prompt, err := a.Reflect(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return nil
	},
}

var starterCmd = &cobra.Command{
	Use:   "starter [CURRENT TEXT...]",
	Short: "Suggest how to start or continue today's entry",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp("starter")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		current := strings.Join(args, " ")
		if current == "" {
			entry, err := a.Today(cmd.Context())
			if err != nil {
				return err
			}
			if entry != nil {
				current = entry.Content
			}
		}
		starter, err := a.WritingHelp(cmd.Context(), current)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), starter)
		return nil
	},
}
