package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/config"
	"github.com/hanoivibes/jobport/display"
	"github.com/hanoivibes/jobport/errors"
)

// ConfigCmd manages jobport configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jobport configuration",
	Long: `Display and manage jobport configuration.

Configuration sources (in order of precedence):
1. Environment variables (JOBPORT_* prefix)
2. Project config (./jobport.toml)
3. User config (~/.jobport/config.toml)
4. System config (/etc/jobport/config.toml)
5. Default values

Examples:
  jobport config init       # Write a commented default user config
  jobport config show       # Show the effective configuration`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Write a commented default configuration to the user config path. Refuses to overwrite an existing file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		if path == "" {
			path = config.UserConfigPath()
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}

		pterm.Success.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(cfg)
		}

		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Printf("# jobport configuration\n%s", string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("path", "", "Target file (defaults to the user config path)")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}
