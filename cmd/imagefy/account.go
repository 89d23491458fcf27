package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in; a running UI picks up the change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.session.SignIn(args[0]); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signed in as %s\n", e.session.State().User.Email)
			fmt.Fprintf(out, "Session saved to %s\n", e.session.Path())
			return nil
		},
	}
}

func newLogoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.session.SignOut(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()
			st := e.session.State()
			if !st.SignedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.User.Email)
			return nil
		},
	}
}
