package cli

import (
	"fmt"
	"os"

	"github.com/restitch/restitch/internal/doctree"
)

// LoadTree reads and decodes a tree file in the interchange format.
// Errors carry command-error exit codes.
func LoadTree(path string) (*doctree.Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("tree file not found: %s", path), err)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("reading tree file %s", path), err)
	}

	doc, err := doctree.UnmarshalDocument(data)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("decoding tree file %s", path), err)
	}
	return doc, nil
}

// LoadSchemaFile reads a CUE schema file for metadata validation.
func LoadSchemaFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("schema file not found: %s", path), err)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("reading schema file %s", path), err)
	}
	return data, nil
}
