package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/hubkit/internal/app"
	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// sessionDeps is what the account commands need from either binary.
type sessionDeps struct {
	binary        string
	session       func() app.SessionUseCase
	isInteractive func() bool
}

func newSessionCmds(d sessionDeps) []*cobra.Command {
	return []*cobra.Command{
		newSignInCmd(d),
		newSignUpCmd(d),
		newSignOutCmd(d),
		newWhoAmICmd(d),
	}
}

func newSignInCmd(d sessionDeps) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with an email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := isInteractive(d.isInteractive)
			if email == "" || password == "" {
				if !interactive {
					return fmt.Errorf("--email and --password are required")
				}
				if err := signInForm(&email, &password).Run(); err != nil {
					return formErr(cmd, err)
				}
			}

			err := withSpinner(cmd, interactive, "Signing in...", func() error {
				_, err := d.session().SignIn(cmd.Context(), strings.TrimSpace(email), password)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", formatter.FormatUser(d.session().Current()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newSignUpCmd(d sessionDeps) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := isInteractive(d.isInteractive)
			if name == "" || email == "" || password == "" {
				if !interactive {
					return fmt.Errorf("--name, --email and --password are required")
				}
				if err := signUpForm(&name, &email, &password).Run(); err != nil {
					return formErr(cmd, err)
				}
			}

			err := withSpinner(cmd, interactive, "Creating account...", func() error {
				_, err := d.session().SignUp(cmd.Context(), strings.TrimSpace(email), password, strings.TrimSpace(name))
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", formatter.FormatUser(d.session().Current()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newSignOutCmd(d sessionDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out of the current account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if d.session().Current() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Not signed in."))
				return nil
			}
			if err := d.session().SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoAmICmd(d sessionDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := d.session().Current()
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("Not signed in. Run '%s signin'.", d.binary)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUser(u))
			return nil
		},
	}
}

// formErr turns an aborted form into a quiet cancellation.
func formErr(cmd *cobra.Command, err error) error {
	if isCancelled(err) {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
		return nil
	}
	return err
}
