package doctree

// Attr is the identifier / classes / key-value attributes triple
// attached to attributed nodes. Attribute order is significant and
// preserved.
type Attr struct {
	ID      string
	Classes []string
	KVs     []KV
}

// KV is one key-value attribute pair.
type KV struct {
	Key   string
	Value string
}

// IsEmpty reports whether the attr carries no information.
func (a Attr) IsEmpty() bool {
	return a.ID == "" && len(a.Classes) == 0 && len(a.KVs) == 0
}

// Clone returns a deep copy of the attr.
func (a Attr) Clone() Attr {
	out := Attr{ID: a.ID}
	if len(a.Classes) > 0 {
		out.Classes = append([]string(nil), a.Classes...)
	}
	if len(a.KVs) > 0 {
		out.KVs = append([]KV(nil), a.KVs...)
	}
	return out
}

// Target is a link or image destination.
type Target struct {
	URL   string
	Title string
}
