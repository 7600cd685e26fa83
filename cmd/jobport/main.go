package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/cmd/jobport/commands"
	"github.com/hanoivibes/jobport/errors"
	"github.com/hanoivibes/jobport/logger"
)

var rootCmd = &cobra.Command{
	Use:   "jobport",
	Short: "jobport - recruitment portal client",
	Long: `jobport - command-line client for the recruitment portal.

Job seekers browse and apply to postings, employers publish and manage
postings and review applicants, administrators moderate postings, companies,
and accounts.

Available commands:
  login         - Sign in and persist the session
  account       - Manage the signed-in profile
  jobs          - Browse and manage job postings
  applicants    - Apply to postings and manage applications
  companies     - Browse and manage companies
  review        - Moderate pending postings (admin)
  users         - Manage accounts (admin)
  notifications - List, read, and watch notifications

Examples:
  jobport login alice                  # Sign in
  jobport jobs list --size 20          # Browse postings
  jobport applicants apply --article 7 --file cv.pdf
  jobport notifications watch          # Stream push notifications`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize global logger before any command runs
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.InitializeWithLevel(jsonOutput, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")

	rootCmd.AddCommand(commands.LoginCmd)
	rootCmd.AddCommand(commands.LogoutCmd)
	rootCmd.AddCommand(commands.RegisterCmd)
	rootCmd.AddCommand(commands.ForgotPasswordCmd)
	rootCmd.AddCommand(commands.AccountCmd)
	rootCmd.AddCommand(commands.JobsCmd)
	rootCmd.AddCommand(commands.ApplicantsCmd)
	rootCmd.AddCommand(commands.CompaniesCmd)
	rootCmd.AddCommand(commands.ReviewCmd)
	rootCmd.AddCommand(commands.UsersCmd)
	rootCmd.AddCommand(commands.NotificationsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintln(os.Stderr, hints)
		}
		os.Exit(1)
	}
}
