package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/registrar/core/auth"
	"github.com/trezcool/registrar/core/router"
	"github.com/trezcool/registrar/core/session"
	"github.com/trezcool/registrar/core/toast"
)

var nowFunc = time.Now // mockable

func (cli *commandLine) loginCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in; the password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := cli.container(ctx)
			if err != nil {
				return err
			}
			pwd, err := cli.readPassword("Enter password:")
			if err != nil {
				return err
			}

			resp, err := deps.Client.Login(ctx, auth.LoginRequest{Username: username, Password: pwd})
			if err != nil {
				return err
			}
			deps.Session.Save(ctx, resp.Payload)
			deps.Toasts.Show(resp.Detail, toast.Success)

			next := router.PathHome
			if redirect := deps.Router.Current().Query.Get("redirect"); redirect != "" {
				next = redirect
			}
			deps.Router.Push(next, nil)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (cli *commandLine) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.container(cmd.Context())
			if err != nil {
				return err
			}
			deps.Session.Reset(cmd.Context())
			deps.Router.Push(router.PathLogin, nil)
			fmt.Fprintln(cli.out, "Logged out")
			return nil
		},
	}
}

func (cli *commandLine) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.container(cmd.Context())
			if err != nil {
				return err
			}
			if !deps.Session.IsAuthenticated() {
				fmt.Fprintln(cli.out, "Not logged in")
				return nil
			}

			p := deps.Session.Profile()
			fmt.Fprintf(cli.out, "Username: %s\n", p.Username)
			if p.Fullname != "" {
				fmt.Fprintf(cli.out, "Name:     %s\n", p.Fullname)
			}
			if p.Email != "" {
				fmt.Fprintf(cli.out, "Email:    %s\n", p.Email)
			}
			if claims, err := deps.Session.Claims(); err == nil {
				if left := claims.ExpiresIn(nowFunc()); left > 0 {
					fmt.Fprintf(cli.out, "Token expires in %s\n", left.Round(time.Second))
				} else {
					fmt.Fprintln(cli.out, "Token expired")
				}
			}
			return nil
		},
	}
}

func (cli *commandLine) permissionsCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "List the applications granted to the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := cli.container(ctx)
			if err != nil {
				return err
			}
			if refresh {
				resp, err := deps.Client.GetUserPermissions(ctx)
				if err != nil {
					return err
				}
				deps.Session.ApplyPermissions(ctx, resp.Payload.UserPermissions)
			}

			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tAPPLICATION\tRIGHTS")
			for _, app := range deps.Session.Applications() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", app.ID, app.ID, rightsString(app.Rights))
			}
			return errors.Wrap(w.Flush(), "printing permissions")
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch the permissions from the backend first")
	return cmd
}

func (cli *commandLine) forgetPasswordCmd() *cobra.Command {
	var email, lang string
	cmd := &cobra.Command{
		Use:   "forget-password",
		Short: "Mail a password reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.container(cmd.Context())
			if err != nil {
				return err
			}
			if lang == "" {
				lang = string(deps.Locale.Lang())
			}
			resp, err := deps.Client.ForgetPassword(cmd.Context(), auth.ForgetPasswordRequest{Email: email, Lang: lang})
			if err != nil {
				return err
			}
			deps.Toasts.Show(resp.Detail, toast.Success)
			fmt.Fprintf(cli.out, "Reset link sent to %s\n", resp.Payload.ToUserEmail)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "the account's email")
	cmd.Flags().StringVar(&lang, "lang", "", "language of the email (ar|en; current language by default)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (cli *commandLine) checkTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-token TOKEN",
		Short: "Check a password reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.container(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := deps.Client.CheckToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Token status: %s\n", resp.Payload.TokenStatus)
			return nil
		},
	}
}

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var token, email string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with a reset token; the password is prompted twice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cli.container(cmd.Context())
			if err != nil {
				return err
			}
			pwd, err := cli.readPassword("New password:")
			if err != nil {
				return err
			}
			rePwd, err := cli.readPassword("Confirm password:")
			if err != nil {
				return err
			}

			resp, err := deps.Client.SaveNewPassword(cmd.Context(), auth.PasswordResetRequest{
				Password:   pwd,
				RePassword: rePwd,
				EmailToken: token,
				Email:      email,
			})
			if err != nil {
				return err
			}
			deps.Toasts.Show(resp.Detail, toast.Success)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "the token of the reset link")
	cmd.Flags().StringVar(&email, "email", "", "the account's email, checked against the new password")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func rightsString(rights []session.Right) string {
	names := make([]string, len(rights))
	for i, r := range rights {
		names[i] = r.String()
	}
	return strings.Join(names, ",")
}
