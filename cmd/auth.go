package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		in := bufio.NewReader(cmd.InOrStdin())
		form := auth.LoginForm{}
		if form.Email, err = flagOrPrompt(cmd, in, "email", "Email"); err != nil {
			return err
		}
		if form.Password, err = flagOrPrompt(cmd, in, "password", "Password"); err != nil {
			return err
		}

		user, err := d.auth.Login(cmd.Context(), form)
		if err != nil {
			return formError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		in := bufio.NewReader(cmd.InOrStdin())
		form := auth.RegisterForm{}
		for _, f := range []struct {
			flag, label string
			dst         *string
		}{
			{"name", "Name", &form.Name},
			{"email", "Email", &form.Email},
			{"password", "Password", &form.Password},
			{"confirm", "Confirm password", &form.ConfirmPassword},
		} {
			if *f.dst, err = flagOrPrompt(cmd, in, f.flag, f.label); err != nil {
				return err
			}
		}

		if _, err := d.auth.Register(cmd.Context(), form); err != nil {
			return formError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), auth.MsgRegistered)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.auth.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and session expiry",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		user, err := d.auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(out, "Not signed in.")
			return nil
		}
		fmt.Fprintf(out, "Name:     %s\n", user.Name)
		fmt.Fprintf(out, "Email:    %s\n", user.Email)
		fmt.Fprintf(out, "Backend:  %s\n", d.client.BaseURL())

		tok, err := d.auth.Token(ctx)
		if err != nil || tok == "" {
			return err
		}
		info, err := auth.Inspect(tok)
		if err != nil {
			fmt.Fprintln(out, "Session:  token unreadable")
			return nil
		}
		switch {
		case info.ExpiresAt.IsZero():
			fmt.Fprintln(out, "Session:  no expiry")
		case info.Expired(time.Now()):
			fmt.Fprintf(out, "Session:  expired %s\n", info.ExpiresAt.Local().Format(time.DateTime))
		default:
			fmt.Fprintf(out, "Session:  valid until %s\n", info.ExpiresAt.Local().Format(time.DateTime))
		}
		return nil
	},
}

// flagOrPrompt returns the flag value, asking on stdin when it is empty.
func flagOrPrompt(cmd *cobra.Command, in *bufio.Reader, flag, label string) (string, error) {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// formError keeps validation errors and reduces backend errors to their
// message.
func formError(err error) error {
	var fe auth.FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return errors.New(api.Message(err))
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("password", "", "Password (prompted when omitted)")
	registerCmd.Flags().String("confirm", "", "Password confirmation (prompted when omitted)")
}
