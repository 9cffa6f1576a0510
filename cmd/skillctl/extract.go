package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skill-sync-resume/internal/infrastructure/document"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills from a resume file (txt, pdf or docx)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")
		return runExtract(cmd, path)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("file", "f", "", "resume file to read")
	_ = extractCmd.MarkFlagRequired("file")
}

func runExtract(cmd *cobra.Command, path string) error {
	lg := newLogger()
	defer func() { _ = lg.Sync() }()

	extractor, err := newExtractor()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := document.NewExtractor().ExtractText("", filepath.Base(path), data)
	if err != nil {
		return err
	}

	skills := extractor.Extract(text)
	lg.Debug("extracted skills",
		zap.String("file", path),
		zap.Int("text_runes", len([]rune(text))),
		zap.Int("skills", skills.Len()),
	)

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(skills.Strings(), "\n"))
	return nil
}
