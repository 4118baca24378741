package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-finalizer/internal/schemas"
	"github.com/jonathan/resume-finalizer/internal/session"
	"github.com/jonathan/resume-finalizer/internal/types"
)

var (
	exportPayloadPath string
	exportOutDir      string
	exportFormat      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate resume documents from a payload file",
	Long: `Run the engine headlessly: load a raw resume payload from a JSON file,
select every enhanced line item, and write the exported document(s) to a
directory. Useful for smoke-testing the exporters without the API.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportPayloadPath, "payload", "", "Path to raw payload JSON (required)")
	exportCmd.Flags().StringVar(&exportOutDir, "out", ".", "Directory to write the generated files into")
	exportCmd.Flags().StringVar(&exportFormat, "format", "both", "Export format: pdf, docx or both")
	_ = exportCmd.MarkFlagRequired("payload")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	body, err := os.ReadFile(exportPayloadPath)
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}
	if err := schemas.ValidatePayload(body); err != nil {
		return err
	}

	var payload types.RawPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("failed to parse payload JSON: %w", err)
	}

	sess, err := session.New(&payload, nil)
	if err != nil {
		return err
	}
	if _, err := sess.SelectAll(types.SideEnhanced); err != nil {
		return err
	}

	files, err := sess.Export(context.Background(), types.ExportFormat(exportFormat))
	if err != nil {
		return err
	}

	for _, file := range files {
		path := filepath.Join(exportOutDir, file.Name)
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", path, len(file.Data))
	}
	return nil
}
