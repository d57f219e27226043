package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newCredentialCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credential",
		Aliases: []string{"cred"},
		Short:   "Manage remembered credentials directly",
	}
	cmd.AddCommand(
		newCredentialSetCmd(flags),
		newCredentialGetCmd(flags),
		newCredentialListCmd(flags),
		newCredentialDeleteCmd(flags),
	)
	return cmd
}

func newCredentialSetCmd(flags *globalFlags) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "set <account> [password]",
		Short: "Store a credential",
		Long:  "Store a credential. If password is omitted, reads it from the terminal or stdin (useful for piping).",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags, "cli", nil)
			if err != nil {
				return err
			}
			defer a.Close()

			account := args[0]
			var password string
			if len(args) == 2 {
				password = args[1]
			} else if password, err = readPassword(cmd, "Password: "); err != nil {
				return err
			}

			if replace {
				err = a.store.Replace(account, password)
			} else {
				err = a.store.Store(account, password)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Credential for %q stored\n", account)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Overwrite an existing credential instead of failing")
	return cmd
}

func newCredentialGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <account>",
		Short: "Print a stored password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags, "cli", nil)
			if err != nil {
				return err
			}
			defer a.Close()

			val, err := a.store.Retrieve(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		},
	}
}

func newCredentialListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List remembered accounts",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags, "cli", nil)
			if err != nil {
				return err
			}
			defer a.Close()

			accounts, err := a.store.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(accounts) == 0 {
				fmt.Fprintln(out, "No credentials stored")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tCREATED\tUPDATED")
			for _, acct := range accounts {
				created, updated := "-", "-"
				if meta := a.store.Metadata().Get(acct); meta != nil {
					created = formatTime(meta.CreatedAt)
					updated = formatTime(meta.UpdatedAt)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", acct, created, updated)
			}
			return w.Flush()
		},
	}
}

func newCredentialDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <account>",
		Short:   "Forget a credential",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags, "cli", nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Credential for %q deleted\n", args[0])
			return nil
		},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
