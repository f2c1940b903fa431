package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openapi-tools/normalizer/loader"
	"github.com/openapi-tools/normalizer/normalize"
)

func runNormalizeCommand(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	inputFile := args[0]
	outputFile := ""
	if len(args) > 1 {
		outputFile = args[1]
	}

	writeInPlace, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	namingFlag, err := cmd.Flags().GetString("naming")
	if err != nil {
		return err
	}
	var counterNaming bool
	switch namingFlag {
	case "pointer":
		counterNaming = false
	case "counter":
		counterNaming = true
	default:
		return fmt.Errorf("invalid naming strategy: %s (must be 'pointer' or 'counter')", namingFlag)
	}

	parser, err := loader.LoadFile(inputFile)
	if err != nil {
		return err
	}

	if err := normalize.Normalize(ctx, parser, normalize.Options{CounterNaming: counterNaming}); err != nil {
		return fmt.Errorf("failed to normalize document: %w", err)
	}

	out, err := yaml.Marshal(parser.Document())
	if err != nil {
		return fmt.Errorf("failed to render normalized document: %w", err)
	}

	switch {
	case writeInPlace:
		return os.WriteFile(inputFile, out, 0o644)
	case outputFile != "":
		if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
			return err
		}
		return os.WriteFile(outputFile, out, 0o644)
	default:
		_, err := os.Stdout.Write(out)
		return err
	}
}
