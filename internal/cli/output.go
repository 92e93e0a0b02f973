package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// stdoutPath selects standard output for the --output flag.
const stdoutPath = "-"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or returns w for [stdoutPath].
func openOutput(w io.Writer, path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{w}, nil
	}
	return os.Create(path)
}

// outputPath derives the output file for input and format when output is
// empty: "layouts/base.json" becomes "layouts/base.svg".
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// writeOutput writes data to path and reports the file written.
func (c *CLI) writeOutput(path string, data []byte) error {
	out, err := openOutput(c.Out, path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if path != stdoutPath {
		printFile(c.Err, path)
	}
	return nil
}
