package doctree

// Meta is front-matter metadata as decoded from YAML. Values are the
// plain shapes yaml.v3 produces: string, bool, int, int64, float64,
// []any, map[string]any, nil.
type Meta map[string]any

// Document is a complete parsed document: metadata plus a block
// sequence.
type Document struct {
	Meta   Meta
	Blocks []Block
}

// CloneMeta returns a deep copy of metadata.
func CloneMeta(m Meta) Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = cloneMetaValue(v)
	}
	return out
}

func cloneMetaValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneMetaValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneMetaValue(item)
		}
		return out
	default:
		// Scalars are immutable.
		return v
	}
}
