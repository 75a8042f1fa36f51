package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskshell/deskshell/internal/cli/styles"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(_ *cobra.Command, _ []string) {
		theme := styles.DefaultTheme()
		fmt.Print(theme.RenderAbout(buildInfo))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
