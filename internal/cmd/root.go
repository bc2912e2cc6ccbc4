package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/townreport/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "townreport",
	Short: "Report issues around town from your terminal",
	Long: `townreport lets you report things you spot around town: snap a photo
or drop a pin on the map, earn points for every report and keep track of
what you have reported.`,
	SilenceUsage: true,
	RunE:         runStart,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/townreport/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.Flags().String("start-view", "", "first screen to show (title, home, camera, map, reports, profile)")
	rootCmd.Flags().String("locale", "", "UI language (ja or en)")
	_ = viper.BindPFlag("ui.start_view", rootCmd.Flags().Lookup("start-view"))
	_ = viper.BindPFlag("ui.locale", rootCmd.Flags().Lookup("locale"))
}

func initConfig() {
	// The maps credential usually lives in .env; a missing file is fine.
	_ = godotenv.Load()

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TOWNREPORT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TOWNREPORT_MAPS_API_KEY for maps.api_key
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
