package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vbonduro/menupick/internal/domain"
	"github.com/vbonduro/menupick/internal/logging"
)

var (
	analyzeImage string
	analyzeText  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Recommend the healthiest item for one menu and print it",
	Example: `  menupick analyze --image menu.jpg
  menupick analyze --text "Burger: 800 cal, Salad: 300 cal"
  cat menu.txt | menupick analyze --text -`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeImage, "image", "i", "", "path to a menu photo")
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", `menu items as text ("-" reads stdin)`)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// One-shot runs stay quiet unless LOG_LEVEL asks for more.
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	logger, cleanupLog, err := logging.New(level, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanupLog()

	sub, err := readAnalyzeInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	res := svc.Recommend(cmd.Context(), sub)
	if !res.OK() {
		return errors.New(res.Err.Message)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return err
}

func readAnalyzeInput(stdin io.Reader) (domain.Submission, error) {
	sub := domain.Submission{MenuText: analyzeText}

	if analyzeText == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return sub, fmt.Errorf("failed to read stdin: %w", err)
		}
		sub.MenuText = string(data)
	}

	if analyzeImage != "" {
		data, err := os.ReadFile(analyzeImage)
		if err != nil {
			return sub, fmt.Errorf("failed to read image: %w", err)
		}
		sub.Image = &domain.Image{
			Data:     data,
			MimeType: http.DetectContentType(data),
			Filename: filepath.Base(analyzeImage),
		}
	}

	return sub, nil
}
