package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/display"
	"github.com/hanoivibes/jobport/errors"
)

// UsersCmd manages accounts
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (admin)",
	Long: `List portal accounts, change roles, and lock or unlock accounts.

Examples:
  jobport users list --username alice
  jobport users role 5 EMPLOYER
  jobport users lock 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := pageQueryFromFlags(cmd)
		if err != nil {
			return err
		}
		username, _ := cmd.Flags().GetString("username")

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		users, err := client.Users(cmd.Context(), query, username)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(users)
		}

		if len(users.Data) == 0 {
			pterm.Info.Println("No accounts found")
			return nil
		}
		for _, user := range users.Data {
			state := ""
			if user.Locked {
				state = pterm.LightRed("locked")
			}
			pterm.Printf("  %s %s %s %s %s\n",
				pterm.LightCyan(idRef(user.ID)),
				pterm.White(user.Username),
				pterm.Gray(user.Email),
				pterm.Yellow(string(user.Role)),
				state)
		}
		pterm.Info.Printf("%d of %d accounts\n", len(users.Data), users.Total)
		return nil
	},
}

var usersRoleCmd = &cobra.Command{
	Use:   "role <id> <USER|EMPLOYER|ADMIN>",
	Short: "Change an account's role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		role := api.Role(args[1])
		switch role {
		case api.RoleUser, api.RoleEmployer, api.RoleAdmin:
		default:
			return errors.Newf("unknown role %q (expected USER, EMPLOYER, or ADMIN)", args[1])
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.UpdateUserRole(cmd.Context(), id, role); err != nil {
			return err
		}

		pterm.Success.Printf("Account %s is now %s\n", idRef(id), string(role))
		return nil
	},
}

var usersLockCmd = &cobra.Command{
	Use:   "lock <id>",
	Short: "Lock an account",
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

		if err := client.LockUser(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Account %s locked\n", idRef(id))
		return nil
	},
}

var usersUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Unlock an account",
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

		if err := client.UnlockUser(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Account %s unlocked\n", idRef(id))
		return nil
	},
}

func init() {
	addPagingFlags(usersListCmd)
	usersListCmd.Flags().String("username", "", "Filter by username substring")

	UsersCmd.AddCommand(usersListCmd)
	UsersCmd.AddCommand(usersRoleCmd)
	UsersCmd.AddCommand(usersLockCmd)
	UsersCmd.AddCommand(usersUnlockCmd)
}
