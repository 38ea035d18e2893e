package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var recognizeCMD = &cobra.Command{
	Use:   "recognize [files...]",
	Short: "Recognize text on image files",
	Long:  "Recognizes text on every file in order using single OCR worker and prints it to stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := newAdapter()
		if err != nil {
			return err
		}
		defer adapter.Terminate()

		lang := settings.GetString("lang")
		for _, file := range args {
			data, err := os.ReadFile(file)
			if err != nil {
				return errors.Join(fmt.Errorf("failed to read file [%s]", file), err)
			}

			text, err := adapter.Recognize(cmd.Context(), base64.StdEncoding.EncodeToString(data), lang)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			if len(args) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", file)
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
		}

		return nil
	},
}
