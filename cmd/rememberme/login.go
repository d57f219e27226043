package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/benaskins/rememberme/internal/home"
	"github.com/benaskins/rememberme/internal/login"
)

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var (
		email      string
		password   string
		rememberMe bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Run the login and home screens without the UI",
		Long: `Validate an email and password, store them if --remember is set, then
look the password up again by email and print it the way the home screen does.

If --password is omitted it is read from the terminal without echo, or from
stdin when piped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags, "cli", nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if password == "" && email != "" {
				if password, err = readPassword(cmd, "Password: "); err != nil {
					return err
				}
			}

			session, err := login.Submit(a.store, login.Form{
				Email:      email,
				Password:   password,
				RememberMe: rememberMe,
			}, a.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case session.Remembered:
				fmt.Fprintf(out, "Credential for %q remembered\n", session.Email)
			case session.StoreErr != nil:
				fmt.Fprintf(out, "Credential for %q not remembered: %v\n", session.Email, session.StoreErr)
			}
			return printHome(cmd, a, session.Email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Login email, used as the account key")
	cmd.Flags().StringVar(&password, "password", "", "Login password (prompted when omitted)")
	cmd.Flags().BoolVar(&rememberMe, "remember", false, "Store the credential in the OS credential store")
	return cmd
}

func newHomeCmd(flags *globalFlags) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "home",
		Short: "Show the remembered credential for an email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags, "cli", nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return printHome(cmd, a, email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Login email to look up")
	return cmd
}

// printHome prints the home screen label. A missing credential leaves the
// default label, as the screen does, and is not an error.
func printHome(cmd *cobra.Command, a *app, email string) error {
	label, err := home.Label(a.store, email)
	if err != nil {
		a.logger.Info("no remembered credential", "account", email, "error", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), label)
	return nil
}

// readPassword prompts without echo on a terminal, otherwise reads stdin.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
