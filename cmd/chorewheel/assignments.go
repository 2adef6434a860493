package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/chorewheel/internal/assignment"
	"github.com/dukerupert/chorewheel/internal/calendar"
	"github.com/dukerupert/chorewheel/internal/model"
	"github.com/dukerupert/chorewheel/internal/roster"
)

func todayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			daily := svc.Today()
			if daily == nil {
				fmt.Fprintln(out, "No assignments for today yet. Use 'chorewheel generate' to create them.")
				return nil
			}
			return printRoster(out, *daily)
		},
	}
}

func generateCmd(a *app) *cobra.Command {
	var (
		date string
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate (or regenerate) assignments for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			var gen *assignment.Generator
			if cmd.Flags().Changed("seed") {
				gen = assignment.NewSeeded(seed)
			}
			svc, err := a.service(gen)
			if err != nil {
				return err
			}
			if date == "" {
				date = svc.TodayDate()
			}

			daily, err := svc.Generate(date)
			if errors.Is(err, roster.ErrNoMembers) {
				return errors.New("no family members; add some with 'chorewheel member add'")
			}
			if err != nil && !errors.Is(err, roster.ErrStorageWrite) {
				return err
			}
			if err := printRoster(cmd.OutOrStdout(), daily); err != nil {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: assignments were generated but not saved: %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to generate, YYYY-MM-DD (default today)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the shuffle for a reproducible roster")
	return cmd
}

func historyCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [date]",
		Short: "List past rosters, or show the roster for one date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				daily, err := svc.ForDate(args[0])
				if err != nil {
					return err
				}
				if daily == nil {
					return fmt.Errorf("no assignments for %s", args[0])
				}
				return printRoster(out, *daily)
			}

			history := svc.History()
			if len(history) == 0 {
				fmt.Fprintln(out, "No assignment history yet.")
				return nil
			}
			if limit > 0 && len(history) > limit {
				history = history[:limit]
			}
			for i, daily := range history {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := printRoster(out, daily); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 7, "number of days to show (0 for all)")
	cmd.AddCommand(historyClearCmd(a))
	return cmd
}

func historyClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [date]",
		Short: "Delete the roster for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			if err := svc.ClearDate(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared assignments for %s\n", args[0])
			return nil
		},
	}
}

// printRoster writes the long-form date followed by one aligned line per
// member.
func printRoster(w io.Writer, daily model.DailyAssignments) error {
	heading, err := calendar.FormatDate(daily.Date)
	if err != nil {
		heading = daily.Date
	}
	fmt.Fprintln(w, heading)

	if len(daily.Assignments) == 0 {
		fmt.Fprintln(w, "  (no family members)")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range daily.Assignments {
		task := "Day off"
		if !a.IsDayOff && a.ChoreName != nil {
			task = *a.ChoreName
		}
		fmt.Fprintf(tw, "  %s\t%s\n", a.FamilyMemberName, task)
	}
	return tw.Flush()
}
