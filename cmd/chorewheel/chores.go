package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukerupert/chorewheel/internal/model"
)

func choreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "chore",
		Aliases: []string{"chores"},
		Short:   "Manage chores",
	}
	cmd.AddCommand(choreAddCmd(a), choreEditCmd(a), choreListCmd(a), choreRmCmd(a))
	return cmd
}

func choreAddCmd(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a chore",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			c, err := svc.AddChore(strings.Join(args, " "), description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", c.Name, shortID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "optional description")
	return cmd
}

func choreEditCmd(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "edit [id or name] [new name]",
		Short: "Rename a chore and replace its description",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			c, err := findChore(svc.ListChores(), args[0])
			if err != nil {
				return err
			}
			updated, err := svc.EditChore(c.ID, strings.Join(args[1:], " "), description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s -> %s\n", c.Name, updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "new description (empty clears it)")
	return cmd
}

func choreListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List chores",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			chores := svc.ListChores()
			out := cmd.OutOrStdout()
			if len(chores) == 0 {
				fmt.Fprintln(out, "No chores yet. Use 'chorewheel chore add' to add one.")
				return nil
			}
			for _, c := range chores {
				if c.Description != "" {
					fmt.Fprintf(out, "%s  %s: %s\n", shortID(c.ID), c.Name, c.Description)
				} else {
					fmt.Fprintf(out, "%s  %s\n", shortID(c.ID), c.Name)
				}
			}
			return nil
		},
	}
}

func choreRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id or name]",
		Aliases: []string{"remove"},
		Short:   "Remove a chore; past rosters keep its name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			c, err := findChore(svc.ListChores(), args[0])
			if err != nil {
				return err
			}
			if err := svc.RemoveChore(c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", c.Name)
			return nil
		},
	}
}

func findChore(chores []model.Chore, ref string) (*model.Chore, error) {
	i, err := resolve(len(chores), ref, func(i int) (string, string) {
		return chores[i].ID, chores[i].Name
	})
	if err != nil {
		return nil, fmt.Errorf("chore %q: %w", ref, err)
	}
	return &chores[i], nil
}
