package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"business-dashboard/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the configured session is signed in",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate := session.NewGate(current.client, current.log)
		res := gate.Resolve(cmd.Context())
		out := cmd.OutOrStdout()

		switch {
		case res.Authenticated():
			name, email := "", ""
			if res.User != nil {
				name, email = res.User.Name, res.User.Email
			}
			fmt.Fprintf(out, "Signed in as %s <%s>\n", name, email)
		case res.State == session.StateIndeterminate:
			fmt.Fprintf(out, "Could not reach %s (%v)\n", current.cfg.API.BaseURL, res.Err)
			fmt.Fprintf(out, "Sign in at %s\n", gate.LoginURL())
		default:
			fmt.Fprintf(out, "Not signed in. Sign in at %s\n", gate.LoginURL())
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start the sign-in flow and print the session cookie",
	Long: `Calls the sign-in endpoint without following its redirect. Against the
dev server the returned cookie is already signed in. Against a real identity
provider, open the printed URL in a browser instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		redirect, err := current.client.StartAuth(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if redirect.SessionCookie == "" {
			fmt.Fprintf(out, "No session issued. Continue sign-in at %s\n", redirect.Location)
			return nil
		}
		fmt.Fprintf(out, "export API_SESSION_COOKIE=%s\n", redirect.SessionCookie)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.open(cmd.Context())
		if err != nil {
			return err
		}
		if err := s.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}
