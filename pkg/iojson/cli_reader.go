package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by FileReader.Read when no file was given and
// stdin is an interactive terminal or empty.
var ErrNoInput = errors.New("no JSON input: pass --file or pipe it on stdin")

// FileReader decodes one JSON document of type T for a command, taken from
// the file named by its --file flag or, when the flag is unset or "-", from
// the command's stdin.
type FileReader[T any] struct {
	path string
}

// Flag returns the --file/-f flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "read JSON from `PATH` instead of stdin",
		Destination: &fr.path,
	}
}

// Read decodes the document. stdin is used only when no file path is set.
func (fr *FileReader[T]) Read(stdin io.Reader) (T, error) {
	var out T

	src := stdin
	if fr.path != "" && fr.path != "-" {
		f, err := os.Open(fr.path)
		if err != nil {
			return out, fmt.Errorf("open %s: %w", fr.path, err)
		}
		defer func() { _ = f.Close() }()
		src = f
	} else if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return out, ErrNoInput
	}

	if err := json.NewDecoder(src).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, ErrNoInput
		}
		return out, fmt.Errorf("decode JSON: %w", err)
	}
	return out, nil
}
