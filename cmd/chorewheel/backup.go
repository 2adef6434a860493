package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/chorewheel/internal/backup"
	"github.com/dukerupert/chorewheel/internal/roster"
	"github.com/dukerupert/chorewheel/internal/store"
)

func exportCmd(a *app) *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the assignment history to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			history := svc.History()
			if err := backup.WriteFile(args[0], history, passphrase); err != nil {
				return err
			}
			a.logger.Info("history exported", "path", args[0], "days", len(history), "encrypted", passphrase != "")
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days to %s\n", len(history), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "encrypt the export with this passphrase")
	return cmd
}

func importCmd(a *app) *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the assignment history with an exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := backup.ReadFile(args[0], passphrase)
			if err != nil {
				return err
			}
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			if err := svc.Import(history); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d days from %s\n", len(history), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase for an encrypted export")
	return cmd
}

func (a *app) backupConfig() backup.Config {
	b := a.cfg.Backup
	return backup.Config{
		S3: backup.S3Config{
			Endpoint:  b.Endpoint,
			Bucket:    b.Bucket,
			Region:    b.Region,
			AccessKey: b.AccessKey,
			SecretKey: b.SecretKey,
			Prefix:    b.Prefix,
		},
		Passphrase:    b.Passphrase,
		Interval:      b.Interval,
		RetentionDays: b.RetentionDays,
	}
}

// backupManager builds the offsite backup manager from config. It is
// disabled, and every call returns backup.ErrNotConfigured, until bucket,
// keys and passphrase are set.
func (a *app) backupManager(svc *roster.Service) (*backup.Manager, error) {
	db, err := a.openDB()
	if err != nil {
		return nil, err
	}
	return backup.NewManager(a.backupConfig(), svc, store.NewBackupStore(db), nil, a.logger.With("component", "backup")), nil
}

func backupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Offsite encrypted backups to S3-compatible storage",
	}
	cmd.AddCommand(backupRunCmd(a), backupListCmd(a), backupRestoreCmd(a))
	return cmd
}

func backupRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Upload the history now",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			mgr, err := a.backupManager(svc)
			if err != nil {
				return err
			}
			b, err := mgr.RunNow(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded backup %d (%d days, %d bytes) to %s\n", b.ID, b.Days, b.SizeBytes, b.Key)
			if err := mgr.Cleanup(cmd.Context()); err != nil {
				a.logger.Warn("backup cleanup failed", "error", err)
			}
			return nil
		},
	}
}

func backupListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			backups, err := store.NewBackupStore(db).List(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(backups) == 0 {
				fmt.Fprintln(out, "No backups yet.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSTATUS\tDAYS\tKEY")
			for _, b := range backups {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", b.ID, b.CreatedAt.Format("2006-01-02 15:04"), b.Status, b.Days, b.Key)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of backups to show")
	return cmd
}

func backupRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [id]",
		Short: "Replace the local history with an offsite backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("backup id %q: %w", args[0], err)
			}
			svc, err := a.service(nil)
			if err != nil {
				return err
			}
			mgr, err := a.backupManager(svc)
			if err != nil {
				return err
			}
			history, err := mgr.Fetch(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := svc.Import(history); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d days from backup %d\n", len(history), id)
			return nil
		},
	}
}
