package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/config"
	"github.com/vacmar/portfolio/internal/logging"
)

// v holds every setting. initConfig rebuilds it on each run.
var v *viper.Viper

// configErr is set when an explicit or discovered config file fails to load.
var configErr error

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with an interactive roadmap",
	Long: `Serves the portfolio page and its roadmap timeline. Without a
subcommand it runs the web server, same as "portfolio serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default ./portfolio.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "development logging")
	rootCmd.PersistentFlags().String("content", "", "roadmap source: .yaml file or SQLite database (default embedded)")
}

func initConfig() {
	v = viper.New()
	bindFlags(v)

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("portfolio")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	configErr = nil
	if err := v.ReadInConfig(); err != nil {
		// No config file is fine; defaults and the environment apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("read config: %w", err)
		}
	}
}

// bindFlags maps command line flags onto config keys.
func bindFlags(v *viper.Viper) {
	_ = v.BindPFlag("log.development", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = v.BindPFlag("content", rootCmd.PersistentFlags().Lookup("content"))
	_ = v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag("mode", serveCmd.Flags().Lookup("mode"))
}

// setup loads configuration and builds the logger.
func setup() (config.Config, *zap.Logger, error) {
	if configErr != nil {
		return config.Config{}, nil, configErr
	}
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Log.Development)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, logger, nil
}
