package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags, environment variables with LOCALOCR_ prefix and optional config file merged together
var settings = viper.New()

var mainCMD = &cobra.Command{
	Use:           "localocr",
	Short:         "Recognize text on images with local OCR engine",
	Long:          "Runs OCR on base64 encoded images, keeping single engine worker alive while the language stays the same.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	mainCMD.PersistentFlags().String("config", "", "Path to YAML config file. Keys are the same as flag names")
	mainCMD.PersistentFlags().String("log-level", "info", "Log level. Possible values are debug, info, warn, error")
	mainCMD.PersistentFlags().String("lang", "eng+chi_sim", "Language tag. Multiple languages are joined with +, for example eng+chi_sim")
	registerEngineFlags(mainCMD)

	mainCMD.AddCommand(recognizeCMD)
	mainCMD.AddCommand(serveCMD)
	mainCMD.AddCommand(modelsCMD)
}

func loadSettings(cmd *cobra.Command) error {
	if err := settings.BindPFlags(cmd.Flags()); err != nil {
		return errors.Join(errors.New("failed to bind command line flags"), err)
	}
	settings.SetEnvPrefix("LOCALOCR")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	if configFile := settings.GetString("config"); configFile != "" {
		settings.SetConfigFile(configFile)
		if err := settings.ReadInConfig(); err != nil {
			return errors.Join(errors.New("failed to read config file"), err)
		}
	}

	slog.SetDefault(newLogger(settings.GetString("log-level")))
	return nil
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mainCMD.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
