package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/ngcomp/internal/config"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

// errReported signals a failure whose message was already shown to the user.
var errReported = errors.New("aborted")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ngcomp",
	Short: "ngcomp - extract Angular template fragments into new components",
	Long: `ngcomp moves a selected fragment of an Angular component template into a
new component next to it.

The new component gets its own directory containing the selected markup as
its template, a copy of the source component's stylesheet, and a copy of the
source component's class with selector, templateUrl, styleUrls and class
name rewritten for the new name.

Project settings are read from .ngcomp/config.yml, machine-wide settings from
~/.ngcomp/config.yml. NGCOMP_* environment variables (also read from a .env
file in the working directory) override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "project config file (default is .ngcomp/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig loads .env so its NGCOMP_* values reach both config scopes.
func initConfig() {
	// A missing .env file is not an error
	_ = godotenv.Load()
}

// rootSettings holds the global flag values as bound in viper.
type rootSettings struct {
	ConfigFile string
	LogLevel   string
	Verbose    bool
}

func currentRootSettings() rootSettings {
	return rootSettings{
		ConfigFile: viper.GetString("config"),
		LogLevel:   viper.GetString("log.level"),
		Verbose:    viper.GetBool("verbose"),
	}
}

// loadConfigs loads the project and global configuration and configures the
// standard logger from them.
func loadConfigs() (*config.Config, *config.GlobalConfig, error) {
	settings := currentRootSettings()

	var (
		project *config.Config
		err     error
	)
	if settings.ConfigFile != "" {
		project, err = config.NewFileLoader(settings.ConfigFile).Load()
	} else {
		project, err = config.LoadConfig()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	global, err := config.LoadGlobalConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load global configuration: %w", err)
	}

	if err := configureLogging(logrus.StandardLogger(), os.Stderr, global.Log.Level, settings.LogLevel, settings.Verbose); err != nil {
		return nil, nil, err
	}

	return project, global, nil
}

// configureLogging sets level, output and format of log. The --log-level flag
// wins over --verbose, which wins over the configured level.
func configureLogging(log *logrus.Logger, out io.Writer, configured, flagLevel string, verbose bool) error {
	level := configured
	if verbose {
		level = "debug"
	}
	if flagLevel != "" {
		level = flagLevel
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log.SetLevel(parsed)
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return nil
}
