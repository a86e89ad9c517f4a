package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bizwhiz/bizwhiz/internal/core"
	"github.com/bizwhiz/bizwhiz/internal/output"
)

type outputSink struct {
	writer io.Writer
	close  func() error
	path   string
}

func (s *outputSink) isStdout() bool {
	return s.path == "-"
}

func outputExtension(format output.Format) string {
	switch format {
	case output.FormatJSON:
		return "json"
	case output.FormatMarkdown:
		return "md"
	case output.FormatCSV:
		return "csv"
	case output.FormatYAML:
		return "yaml"
	default:
		return "txt"
	}
}

// addOutputFlags registers the rendering flags shared by search and results.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", string(output.FormatTable), "output format: table, json, markdown, csv, yaml")
	cmd.Flags().String("out", "", "write output to a file instead of stdout")
	cmd.Flags().Bool("no-color", false, "disable status row colors in table output")
}

func resolveOutputFormat(cmd *cobra.Command) (output.Format, error) {
	value, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	return output.ParseFormat(value)
}

// resolveSortOrder reads --sort and --desc when the command has them.
// Nil means stored order.
func resolveSortOrder(cmd *cobra.Command, records []core.BusinessRecord) ([]int, error) {
	if cmd.Flags().Lookup("sort") == nil {
		return nil, nil
	}
	value, err := cmd.Flags().GetString("sort")
	if err != nil {
		return nil, err
	}
	column, err := output.ParseSortColumn(value)
	if err != nil {
		return nil, err
	}
	desc, err := cmd.Flags().GetBool("desc")
	if err != nil {
		return nil, err
	}
	if column == output.RowColumn && !desc {
		return nil, nil
	}
	return output.SortOrder(records, column, desc), nil
}

func openSink(path string) (*outputSink, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "-" {
		return &outputSink{writer: os.Stdout, close: func() error { return nil }, path: "-"}, nil
	}

	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(trimmed)
	if err != nil {
		return nil, err
	}
	return &outputSink{writer: file, close: file.Close, path: trimmed}, nil
}

// renderRecords writes records in the format the command's flags ask for.
// Row colors only go to a terminal.
func renderRecords(cmd *cobra.Command, records []core.BusinessRecord) error {
	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}

	order, err := resolveSortOrder(cmd, records)
	if err != nil {
		return err
	}

	sink, err := openSink(outPath)
	if err != nil {
		return err
	}
	defer sink.close() //nolint:errcheck

	formatter := output.NewFormatter(format, !noColor && sink.isStdout())
	if order != nil {
		formatter = output.WithOrder(formatter, order)
	}

	rendered, err := formatter.FormatRecords(records)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	if _, err := io.WriteString(sink.writer, rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !sink.isStdout() {
		if ext := outputExtension(format); !strings.EqualFold(strings.TrimPrefix(filepath.Ext(sink.path), "."), ext) {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s output to %s (conventional extension: .%s)\n", format, sink.path, ext)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", sink.path)
		}
	}
	return nil
}
