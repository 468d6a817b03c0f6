package hazardbench

import (
	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
