package cmd

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/spigell/course-finder/internal/recommend"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "course-finder"

	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	Catalog     string         `mapstructure:"catalog" validate:"required"`
	SessionFile string         `mapstructure:"session-file"`
	Output      string         `mapstructure:"output" validate:"omitempty,oneof=text json"`
	View        recommend.View `mapstructure:"view"`
	// Profile holds raw profile fields keyed like the questionnaire answers.
	Profile map[string]any `mapstructure:"profile"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "course-finder recommends degree and certificate programs that fit your preferences",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("catalog", "COURSE_FINDER_CATALOG"); err != nil {
		log.Fatalf("binding COURSE_FINDER_CATALOG environment variable: %v", err)
	}
	if err := viper.BindEnv("session-file", "COURSE_FINDER_SESSION_FILE"); err != nil {
		log.Fatalf("binding COURSE_FINDER_SESSION_FILE environment variable: %v", err)
	}

	viper.SetDefault("catalog", "programs.json")
	viper.SetDefault("session-file", ".course-finder-profile.json")
	viper.SetDefault("output", OutputText)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is course-finder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// The version command does not need any config.
	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config is fine, everything has defaults.
	// An explicit or unparseable config is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if err := validator.New().Struct(config); err != nil {
		return config, err
	}

	return config, nil
}
