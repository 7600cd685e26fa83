package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/display"
)

// AccountCmd manages the signed-in profile
var AccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the signed-in profile",
	Long: `Manage the signed-in account: show and update the profile, change the
avatar, and follow companies to receive posting notifications.

Examples:
  jobport account show
  jobport account update --full-name "Alice Tran"
  jobport account avatar photo.png
  jobport account follow 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signed-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		profile, err := client.GetAccount(cmd.Context())
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(profile)
		}

		printProfile(profile)
		return nil
	},
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		current, err := client.GetAccount(cmd.Context())
		if err != nil {
			return err
		}

		// Start from the current profile so unset flags keep their value
		payload := api.UpdateUserPayload{
			Email:    current.Email,
			FullName: current.FullName,
			Username: current.Username,
			Birth:    current.Birth,
			Gender:   current.Gender,
		}
		if cmd.Flags().Changed("email") {
			payload.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("full-name") {
			payload.FullName, _ = cmd.Flags().GetString("full-name")
		}
		if cmd.Flags().Changed("birth") {
			payload.Birth, _ = cmd.Flags().GetString("birth")
		}

		updated, err := client.UpdateAccount(cmd.Context(), payload)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(updated)
		}

		pterm.Success.Println("Profile updated")
		printProfile(updated)
		return nil
	},
}

var accountAvatarCmd = &cobra.Command{
	Use:   "avatar <file>",
	Short: "Upload a new avatar image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		avatar, err := readUpload(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.UpdateAvatar(cmd.Context(), avatar); err != nil {
			return err
		}

		pterm.Success.Printf("Avatar updated from %s\n", avatar.FileName)
		return nil
	},
}

var accountFollowCmd = &cobra.Command{
	Use:   "follow <company-id>",
	Short: "Follow a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.FollowCompany(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Following company %d\n", id)
		return nil
	},
}

var accountUnfollowCmd = &cobra.Command{
	Use:   "unfollow <company-id>",
	Short: "Unfollow a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.UnfollowCompany(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Unfollowed company %d\n", id)
		return nil
	},
}

var accountFollowingCmd = &cobra.Command{
	Use:   "following",
	Short: "List followed companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		companies, err := client.FollowedCompanies(cmd.Context())
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(companies)
		}

		if len(companies) == 0 {
			pterm.Info.Println("Not following any companies")
			return nil
		}
		for _, company := range companies {
			pterm.Printf("  %s %s %s\n",
				pterm.LightCyan(idRef(company.ID)),
				pterm.White(company.Name),
				pterm.Gray(orDash(company.Location)))
		}
		return nil
	},
}

func printProfile(profile *api.UserInfo) {
	pterm.Printf("%s %s\n", pterm.White(profile.FullName), pterm.Gray("@"+profile.Username))
	pterm.Printf("  %s %s\n", pterm.Gray("email:"), profile.Email)
	pterm.Printf("  %s %s\n", pterm.Gray("role:"), string(profile.Role))
	if profile.Birth != "" {
		pterm.Printf("  %s %s\n", pterm.Gray("birth:"), profile.Birth)
	}
	if len(profile.Skills) > 0 {
		names := make([]string, len(profile.Skills))
		for i, skill := range profile.Skills {
			names[i] = skill.Name
		}
		pterm.Printf("  %s %s\n", pterm.Gray("skills:"), pterm.Yellow(strings.Join(names, ", ")))
	}
}

func init() {
	accountUpdateCmd.Flags().String("email", "", "New email address")
	accountUpdateCmd.Flags().String("full-name", "", "New full name")
	accountUpdateCmd.Flags().String("birth", "", "New date of birth (YYYY-MM-DD)")

	AccountCmd.AddCommand(accountShowCmd)
	AccountCmd.AddCommand(accountUpdateCmd)
	AccountCmd.AddCommand(accountAvatarCmd)
	AccountCmd.AddCommand(accountFollowCmd)
	AccountCmd.AddCommand(accountUnfollowCmd)
	AccountCmd.AddCommand(accountFollowingCmd)
}
