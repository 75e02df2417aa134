package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Textual is implemented by results with a human readable form
type Textual interface {
	Text(w io.Writer) error
}

// Print outputs data in the configured format.
func (f *OutputFormatter) Print(data Textual) error {
	if f.Format == "json" {
		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}
	return data.Text(f.Writer)
}

// Failure outputs a load error, JSON output wraps it in an object.
func (f *OutputFormatter) Failure(err error) error {
	if f.Format == "json" {
		if encodeErr := json.NewEncoder(f.Writer).Encode(map[string]string{"error": err.Error()}); encodeErr != nil {
			return encodeErr
		}
		return err
	}
	fmt.Fprintf(f.Writer, "Error: %v\n", err)
	return err
}
