package provenance

// Provenance records where a document node came from.
//
// This is a sealed interface: only the variant types in this package
// implement it. Values are immutable and safe to share across trees.
type Provenance interface {
	// provenanceMarker is a private method to restrict implementers.
	provenanceMarker()
}

// Direct is a byte span in an on-disk source file.
type Direct struct {
	SourceID string // stable identifier of the source (usually a path)
	Start    int    // byte offset, inclusive
	End      int    // byte offset, exclusive
}

// Derived is a span expressed relative to a parent provenance,
// e.g. the body of a fenced block inside its enclosing span.
type Derived struct {
	Parent Provenance
	Start  int // byte offset within the parent, inclusive
	End    int // byte offset within the parent, exclusive
}

// Composite is an ordered concatenation of pieces drawn from other
// provenances. Offsets describe where each piece lands in the
// assembled result.
type Composite struct {
	Pieces []Piece
}

// Piece is one contributor to a Composite.
type Piece struct {
	Source Provenance
	Offset int // byte offset of this piece in the assembled result
	Length int // byte length of this piece
}

// Stage marks content synthesized by a pipeline stage rather than
// read from a source. Line is the 1-based line in the stage output
// where the content first appears, or 0 if unknown.
type Stage struct {
	Name string
	Line int
}

func (*Direct) provenanceMarker()    {}
func (*Derived) provenanceMarker()   {}
func (*Composite) provenanceMarker() {}
func (*Stage) provenanceMarker()     {}

// NewDirect constructs a Direct span.
func NewDirect(sourceID string, start, end int) *Direct {
	return &Direct{SourceID: sourceID, Start: start, End: end}
}

// NewStage constructs a Stage marker.
func NewStage(name string, line int) *Stage {
	return &Stage{Name: name, Line: line}
}

// Equal reports whether two provenance values describe the same
// origin. Used by tests and diagnostics; the reconciliation engine
// itself never calls this.
func Equal(a, b Provenance) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case *Direct:
		bv, ok := b.(*Direct)
		return ok && av.SourceID == bv.SourceID && av.Start == bv.Start && av.End == bv.End
	case *Derived:
		bv, ok := b.(*Derived)
		return ok && av.Start == bv.Start && av.End == bv.End && Equal(av.Parent, bv.Parent)
	case *Composite:
		bv, ok := b.(*Composite)
		if !ok || len(av.Pieces) != len(bv.Pieces) {
			return false
		}
		for i := range av.Pieces {
			ap, bp := av.Pieces[i], bv.Pieces[i]
			if ap.Offset != bp.Offset || ap.Length != bp.Length || !Equal(ap.Source, bp.Source) {
				return false
			}
		}
		return true
	case *Stage:
		bv, ok := b.(*Stage)
		return ok && av.Name == bv.Name && av.Line == bv.Line
	default:
		return false
	}
}

// Location is a resolved position in a concrete source file.
type Location struct {
	SourceID string
	Offset   int
}

// Resolve maps a byte offset within the content described by p back
// to a concrete source location. It returns false when the offset
// falls through to synthesized content (Stage) or outside every
// Composite piece.
func Resolve(p Provenance, offset int) (Location, bool) {
	switch v := p.(type) {
	case *Direct:
		return Location{SourceID: v.SourceID, Offset: v.Start + offset}, true
	case *Derived:
		return Resolve(v.Parent, v.Start+offset)
	case *Composite:
		for _, piece := range v.Pieces {
			if offset >= piece.Offset && offset < piece.Offset+piece.Length {
				return Resolve(piece.Source, offset-piece.Offset)
			}
		}
		return Location{}, false
	case *Stage:
		return Location{}, false
	default:
		return Location{}, false
	}
}
