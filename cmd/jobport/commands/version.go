package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/display"
	"github.com/hanoivibes/jobport/internal/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show jobport version information",
	Long:  `Display version, build time, commit hash, and platform information for the jobport binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(info)
		}

		fmt.Println(info.String())
		return nil
	},
}
