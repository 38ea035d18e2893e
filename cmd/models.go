package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/guardvision/localocr/ocr"
	"github.com/spf13/cobra"
)

var modelsCMD = &cobra.Command{
	Use:   "models",
	Short: "Manage tesseract language models",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var modelsFetchCMD = &cobra.Command{
	Use:   "fetch",
	Short: "Download language models into the models folder",
	Long:  "Downloads missing language models for --lang into --ocr-tesseract-models-folder. Run it during deployment, workers never download models at runtime.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := tesseractConfigFromSettings(slog.Default())
		if err != nil {
			return err
		}
		if repository := settings.GetString("models-repository"); repository != "" {
			config.ModelsRepository = repository
		}

		languages := ocr.SplitLanguages(settings.GetString("lang"))
		if len(languages) == 0 {
			return errors.New("no languages specified")
		}

		return ocr.FetchModels(cmd.Context(), http.DefaultClient, config, languages)
	},
}

func init() {
	modelsFetchCMD.Flags().String("models-repository", "", "Base URL to download models from. By default pinned tessdata release for the model type is used")
	modelsCMD.AddCommand(modelsFetchCMD)
}
