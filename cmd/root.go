package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/atmdb/atmdb/internal/utils"
	"github.com/atmdb/atmdb/pkg/catalog"
	"github.com/atmdb/atmdb/pkg/whttp"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `
	  __ _| |_ _ __ ___   __| | |__
	 / _' | __| '_ ' _ \ / _' | '_ \
	| (_| | |_| | | | | | (_| | |_) |
	 \__,_|\__|_| |_| |_|\__,_|_.__/

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "atmdb",
	Short: "Browse a Cobblemon and AllTheMons species codex.",
	Long: LOGO + `atmdb loads a codex of Pokémon species, forms and spawn rules, works out
how rare each one is, and lets you search and sort it from the command line
or in the browser.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.atmdb.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("codex", "c", "", "Codex file path or http(s) URL (default from config, ./data/codex.json)")
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy used when fetching the codex (Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".atmdb")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	viper.SetDefault("codex", "./data/codex.json")
	viper.SetDefault("clean.denylist", catalog.DefaultDenylist)
	viper.SetDefault("rarity.empty", "ultra-rare")
	viper.SetDefault("http.retries", 3)
	viper.SetDefault("http.proxy", "")
	viper.SetDefault("serve.listen", ":8080")
	viper.SetDefault("build.basedex", "./data/cobblemon/species")
	viper.SetDefault("build.expansiondex", "")
	viper.SetDefault("build.basespawns", "")
	viper.SetDefault("build.expansionspawns", "")
	viper.SetDefault("build.baselabel", "Cobblemon")
	viper.SetDefault("build.expansionlabel", "AllTheMons")
	viper.SetDefault("build.strip", []string{"drops", "moves"})

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.atmdb.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// stringSetting prefers an explicitly set flag over the config value.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	return viper.GetString(key)
}

func newNormalizer() (*catalog.Normalizer, error) {
	n := catalog.NewNormalizer()
	n.Cleaner = catalog.NewCleaner(viper.GetStringSlice("clean.denylist"))

	policy, err := catalog.ParseEmptyPolicy(viper.GetString("rarity.empty"))
	if err != nil {
		return nil, err
	}
	n.Rarity.Empty = policy
	return n, nil
}

// loadCatalog loads the configured codex. The catalog is returned even when
// loading failed so the web server can report the failure.
func loadCatalog(ctx context.Context, cmd *cobra.Command) (*catalog.Catalog, error) {
	n, err := newNormalizer()
	if err != nil {
		return nil, err
	}

	client, err := whttp.NewClient(stringSetting(cmd, "proxy", "http.proxy"), viper.GetInt("http.retries"))
	if err != nil {
		return nil, err
	}

	location := stringSetting(cmd, "codex", "codex")
	utils.Log.Debugf("Loading codex from %s", location)
	return catalog.Load(ctx, location, client, n), nil
}
