package metadata

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/restitch/restitch/internal/doctree"
)

// ValidateSchema checks metadata against a CUE schema. The schema
// source is compiled fresh per call; filename is used in positions
// reported by validation errors.
//
// The metadata map unifies with the schema's top-level value, so a
// schema like
//
//	title:  string
//	author?: string | [...string]
//
// constrains those keys and leaves unknown keys open unless the
// schema closes them.
func ValidateSchema(meta doctree.Meta, schemaSource []byte, filename string) error {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename(filename))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling schema %s: %w", filename, err)
	}

	value := ctx.Encode(map[string]any(meta))
	if err := value.Err(); err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var msgs []string
		for _, e := range errors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return &ValidationError{Issues: msgs}
	}
	return nil
}

// ValidationError aggregates every schema violation found.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "metadata validation failed: " + e.Issues[0]
	}
	return fmt.Sprintf("metadata validation failed with %d issues (first: %s)", len(e.Issues), e.Issues[0])
}
