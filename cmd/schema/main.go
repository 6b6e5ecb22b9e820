package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"wisp-server/pkg/api"
	"wisp-server/pkg/logger"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the protocol JSON schemas")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}
	logger.Init()

	for _, doc := range api.Schemas() {
		path := filepath.Join(outDir, doc.File)
		if err := writeSchema(path, doc.Schema); err != nil {
			logger.Log.WithError(err).WithField("path", path).Fatal("Failed to write schema")
		}
		logger.Log.WithField("path", path).Info("Schema written")
	}
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
