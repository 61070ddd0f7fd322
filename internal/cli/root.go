// Package cli wires the catalyst commands. Each stage of the pipeline
// is its own subcommand so cron jobs can schedule them independently;
// run chains them for interactive use.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hmtrong/catalyst/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalyst",
	Short: "Catalyst - biopharma catalyst calendar from SEC filings and news",
	Long: `Catalyst builds a forward-looking calendar of biopharma catalysts:
PDUFA target dates, advisory committee meetings, complete response
letters, clinical holds, topline readouts and regulatory submissions.

Events are extracted from SEC EDGAR full-text filings and from news
mentions, merged into a master calendar that persists across runs, and
ranked into a watchlist.

Dates are extracted, not predicted. Approximate language ("Q2 2026",
"mid-2026") is kept approximate and never blended with exact dates.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Catalyst.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("catalyst v0.1.4")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.catalyst/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.catalyst")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CATALYST_*
	viper.SetEnvPrefix("CATALYST")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the typed config from defaults plus any config
// file viper found. API keys come from the environment only.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			err = yaml.Unmarshal(data, cfg)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: config file ignored: %v\n", err)
		}
	}
	cfg.Output.Verbose = verbose
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	return cfg
}
