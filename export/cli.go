package export

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
)

// ExportOptions configures the export behavior.
type ExportOptions struct {
	// PrettyPrint enables indented JSON output
	PrettyPrint bool

	// Indent is the string used for indentation (default: "  ")
	Indent string

	// Output is where JSON will be written (default: os.Stdout)
	Output io.Writer
}

// DefaultExportOptions returns options with sensible defaults.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		PrettyPrint: false,
		Indent:      "  ",
		Output:      os.Stdout,
	}
}

// ExportMachine writes the render state machine as JSON.
func ExportMachine(opts ExportOptions) error {
	return writeJSON(Export(), opts)
}

// writeJSON writes a value as JSON to the configured output.
func writeJSON(v any, opts ExportOptions) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var data []byte
	var err error

	if opts.PrettyPrint {
		indent := opts.Indent
		if indent == "" {
			indent = "  "
		}
		data, err = json.MarshalIndent(v, "", indent)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Errorf("JSON marshal failed: %w", err)
	}

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	// Add trailing newline for terminal output
	if _, err := out.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write newline failed: %w", err)
	}

	return nil
}

// RunCLI provides a simple CLI for exporting the render state machine.
// Usage: export_tool [-pretty] [-indent=STR] [-o=FILE]
func RunCLI(args []string) error {
	fs := flag.NewFlagSet("refine-export", flag.ContinueOnError)

	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	indent := fs.String("indent", "  ", "Indentation string (used with -pretty)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := ExportOptions{
		PrettyPrint: *pretty,
		Indent:      *indent,
		Output:      os.Stdout,
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		opts.Output = f
	}

	return ExportMachine(opts)
}
