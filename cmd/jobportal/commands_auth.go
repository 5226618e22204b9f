package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jrsteele09/go-student-jobs/authmodel"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/jrsteele09/go-student-jobs/token/jwt"
	"github.com/spf13/cobra"
)

// prompt reads one line from in when value is empty.
func prompt(in *bufio.Reader, out io.Writer, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCommand(get func() *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			in := bufio.NewReader(cmd.InOrStdin())
			var err error
			if email, err = prompt(in, cmd.OutOrStdout(), "Email", email); err != nil {
				return err
			}
			if password, err = prompt(in, cmd.OutOrStdout(), "Password", password); err != nil {
				return err
			}

			return a.call(cmd.Context(), func(ctx context.Context) error {
				if _, err := a.session.Login(ctx, email, password); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", authmodel.LoginRequest{Email: email}.Normalise().Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newRegisterCommand(get func() *app) *cobra.Command {
	var req authmodel.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			in := bufio.NewReader(cmd.InOrStdin())
			var err error
			if req.Username, err = prompt(in, cmd.OutOrStdout(), "Username", req.Username); err != nil {
				return err
			}
			if req.Email, err = prompt(in, cmd.OutOrStdout(), "Email", req.Email); err != nil {
				return err
			}
			if req.Password, err = prompt(in, cmd.OutOrStdout(), "Password", req.Password); err != nil {
				return err
			}

			return a.call(cmd.Context(), func(ctx context.Context) error {
				if _, err := a.session.Register(ctx, req); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", req.Username)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "display name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := get().session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// newStatusCommand reports what is stored locally. The token is decoded
// without verification and nothing is sent to the backend.
func newStatusCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backend:      %s\n", a.config.GetBaseURL())
			fmt.Fprintf(out, "Credentials:  %s\n", a.store.Path())

			access := a.store.GetAccessToken()
			if !utils.IsSet(access) {
				fmt.Fprintln(out, "Status:       logged out")
				return nil
			}
			fmt.Fprintln(out, "Status:       logged in")
			fmt.Fprintf(out, "Refresh:      %s\n", map[bool]string{true: "stored", false: "none"}[utils.IsSet(a.store.GetRefreshToken())])

			claims, err := jwt.Inspect(*access)
			if err != nil {
				fmt.Fprintln(out, "Access token: not a JWT")
				return nil
			}
			fmt.Fprintf(out, "Account:      %s\n", dash(claims.Email))
			if !claims.ExpiresAt.IsZero() {
				state := "valid"
				if claims.Expired(time.Now()) {
					state = "expired, refreshed on next request"
				}
				fmt.Fprintf(out, "Expires:      %s (%s)\n", claims.ExpiresAt.Local().Format(time.RFC1123), state)
			}
			return nil
		},
	}
}
