package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukerupert/chorewheel/internal/model"
	"github.com/dukerupert/chorewheel/internal/roster"
)

func memberCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"members"},
		Short:   "Manage family members",
	}
	cmd.AddCommand(memberAddCmd(a), memberListCmd(a), memberRmCmd(a))
	return cmd
}

func memberAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Add a family member",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			m, err := svc.AddMember(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", m.Name, shortID(m.ID))
			return nil
		},
	}
}

func memberListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List family members",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			members := svc.ListMembers()
			out := cmd.OutOrStdout()
			if len(members) == 0 {
				fmt.Fprintln(out, "No family members yet. Use 'chorewheel member add' to add one.")
				return nil
			}
			for _, m := range members {
				fmt.Fprintf(out, "%s  %s\n", shortID(m.ID), m.Name)
			}
			return nil
		},
	}
}

func memberRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id or name]",
		Aliases: []string{"remove"},
		Short:   "Remove a family member; past rosters keep their name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			m, err := findMember(svc.ListMembers(), args[0])
			if err != nil {
				return err
			}
			if err := svc.RemoveMember(m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", m.Name)
			return nil
		},
	}
}

// findMember matches ref against a full id, a unique id prefix, or a name.
func findMember(members []model.FamilyMember, ref string) (*model.FamilyMember, error) {
	i, err := resolve(len(members), ref, func(i int) (string, string) {
		return members[i].ID, members[i].Name
	})
	if err != nil {
		return nil, fmt.Errorf("family member %q: %w", ref, err)
	}
	return &members[i], nil
}

// resolve finds the single index whose id or name matches ref. Exact id
// and case-insensitive name matches win over id prefixes.
func resolve(n int, ref string, at func(i int) (id, name string)) (int, error) {
	ref = strings.TrimSpace(ref)
	prefix := -1
	prefixes := 0
	for i := 0; i < n; i++ {
		id, name := at(i)
		if id == ref || strings.EqualFold(name, ref) {
			return i, nil
		}
		if ref != "" && strings.HasPrefix(id, ref) {
			prefix = i
			prefixes++
		}
	}
	switch prefixes {
	case 0:
		return -1, roster.ErrNotFound
	case 1:
		return prefix, nil
	default:
		return -1, fmt.Errorf("ambiguous id prefix, %d matches", prefixes)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
