package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/display"
)

// LoginCmd signs in and persists the session
var LoginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in to the portal",
	Long: `Sign in with username and password.

The access and refresh tokens and the signed-in profile are persisted in the
local session store. Later commands reuse them until the session expires.

Example:
  jobport login alice
  jobport login alice --password secret   # non-interactive`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			password, err = promptPassword("Password")
			if err != nil {
				return err
			}
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		tokens, err := client.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(tokens)
		}

		pterm.Success.Printf("Signed in as %s\n", args[0])
		return nil
	},
}

// LogoutCmd ends the session
var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.Logout(cmd.Context()); err != nil {
			return err
		}

		pterm.Success.Println("Signed out")
		return nil
	},
}

// RegisterCmd creates a new account
var RegisterCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Register a new account",
	Long: `Register a new job-seeker account.

Example:
  jobport register alice --email alice@example.com --full-name "Alice Tran" --birth 1998-04-02`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		fullName, _ := cmd.Flags().GetString("full-name")
		gender, _ := cmd.Flags().GetString("gender")
		birth, _ := cmd.Flags().GetString("birth")

		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			password, err = promptPassword("Password")
			if err != nil {
				return err
			}
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		payload := api.RegisterPayload{
			Username: args[0],
			Password: password,
			Email:    email,
			FullName: fullName,
			Gender:   gender,
			Birth:    birth,
		}
		if err := client.Register(cmd.Context(), payload); err != nil {
			return err
		}

		pterm.Success.Printf("Registered %s\n", args[0])
		pterm.Info.Println("Sign in with: jobport login " + args[0])
		return nil
	},
}

// ForgotPasswordCmd requests a password reset email
var ForgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Request a password reset email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.ForgotPassword(cmd.Context(), args[0]); err != nil {
			return err
		}

		pterm.Success.Printf("Reset instructions sent to %s\n", args[0])
		return nil
	},
}

func init() {
	LoginCmd.Flags().String("password", "", "Password (prompted when omitted)")

	RegisterCmd.Flags().String("password", "", "Password (prompted when omitted)")
	RegisterCmd.Flags().String("email", "", "Email address")
	RegisterCmd.Flags().String("full-name", "", "Full name")
	RegisterCmd.Flags().String("gender", "", "Gender")
	RegisterCmd.Flags().String("birth", "", "Date of birth (YYYY-MM-DD)")
	RegisterCmd.MarkFlagRequired("email")
	RegisterCmd.MarkFlagRequired("full-name")
}
