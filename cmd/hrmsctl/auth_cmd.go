package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var err error
			if email == "" {
				if email, err = prompt(in, out, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(in, out, "Password: "); err != nil {
					return err
				}
			}

			sess, err := a.client().WithToken("").Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			a.cfg.Email = sess.User.Email
			a.cfg.AccessToken = sess.AccessToken
			a.cfg.RefreshToken = sess.RefreshToken
			a.cfg.ExpiresAt = sess.ExpiresAt
			if err := a.save(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Signed in as %s\n", sess.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.signedIn() {
				// The local session is dropped even if the server call fails.
				if err := a.client().SignOut(cmd.Context()); err != nil {
					a.logger.Sugar().Warnw("sign out request failed", "error", err)
				}
			}
			a.cfg.clearSession()
			if err := a.save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			me, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			name := me.Name
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID:    %s\nEmail: %s\nName:  %s\n", me.ID, me.Email, name)
			return nil
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change the display name of the signed in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return errors.New("--name is required")
			}
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			me, err := c.UpdateProfile(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name updated to %s\n", me.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	return cmd
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
