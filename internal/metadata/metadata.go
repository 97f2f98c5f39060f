package metadata

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/restitch/restitch/internal/doctree"
)

// Domain separation prefix for metadata digests. Changing the
// canonical encoding requires bumping the version here.
const digestPrefix = "restitch:meta:v1:"

// Changed reports whether the two metadata maps differ. Comparison is
// over canonical bytes, so key order and YAML int/float spelling of
// whole numbers do not count as changes. Nil and empty metadata are
// equal.
func Changed(original, transformed doctree.Meta) bool {
	a, errA := MarshalCanonical(map[string]any(original))
	b, errB := MarshalCanonical(map[string]any(transformed))
	if errA != nil || errB != nil {
		// Unencodable values (exotic YAML tags). Fall back to a
		// structural comparison rather than guessing.
		return !reflect.DeepEqual(original, transformed)
	}
	return !bytes.Equal(a, b)
}

// Digest returns the hex SHA-256 of the canonical metadata bytes,
// domain-separated. Used by the run log.
func Digest(meta doctree.Meta) (string, error) {
	canonical, err := MarshalCanonical(map[string]any(meta))
	if err != nil {
		return "", fmt.Errorf("canonicalizing metadata: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(digestPrefix))
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ParseFrontMatter decodes a YAML document into metadata.
func ParseFrontMatter(data []byte) (doctree.Meta, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var meta map[string]any
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	return doctree.Meta(meta), nil
}
