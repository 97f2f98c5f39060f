package provenance

import (
	"encoding/json"
	"fmt"
)

// Wire kind tags for the JSON interchange format.
const (
	kindDirect    = "direct"
	kindDerived   = "derived"
	kindComposite = "composite"
	kindStage     = "stage"
)

type directJSON struct {
	Kind     string `json:"kind"`
	SourceID string `json:"source_id"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

type derivedJSON struct {
	Kind   string          `json:"kind"`
	Parent json.RawMessage `json:"parent"`
	Start  int             `json:"start"`
	End    int             `json:"end"`
}

type pieceJSON struct {
	Source json.RawMessage `json:"source"`
	Offset int             `json:"offset"`
	Length int             `json:"length"`
}

type compositeJSON struct {
	Kind   string      `json:"kind"`
	Pieces []pieceJSON `json:"pieces"`
}

type stageJSON struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"line"`
}

// Marshal encodes p as tagged JSON. A nil provenance encodes as null.
func Marshal(p Provenance) ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	switch v := p.(type) {
	case *Direct:
		return json.Marshal(directJSON{Kind: kindDirect, SourceID: v.SourceID, Start: v.Start, End: v.End})
	case *Derived:
		parent, err := Marshal(v.Parent)
		if err != nil {
			return nil, err
		}
		return json.Marshal(derivedJSON{Kind: kindDerived, Parent: parent, Start: v.Start, End: v.End})
	case *Composite:
		pieces := make([]pieceJSON, len(v.Pieces))
		for i, piece := range v.Pieces {
			src, err := Marshal(piece.Source)
			if err != nil {
				return nil, err
			}
			pieces[i] = pieceJSON{Source: src, Offset: piece.Offset, Length: piece.Length}
		}
		return json.Marshal(compositeJSON{Kind: kindComposite, Pieces: pieces})
	case *Stage:
		return json.Marshal(stageJSON{Kind: kindStage, Name: v.Name, Line: v.Line})
	default:
		return nil, fmt.Errorf("unknown provenance type %T", p)
	}
}

// Unmarshal decodes tagged JSON produced by Marshal. A JSON null
// decodes as a nil provenance.
func Unmarshal(data []byte) (Provenance, error) {
	if string(data) == "null" {
		return nil, nil
	}
	var tag struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decoding provenance: %w", err)
	}
	switch tag.Kind {
	case kindDirect:
		var v directJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &Direct{SourceID: v.SourceID, Start: v.Start, End: v.End}, nil
	case kindDerived:
		var v derivedJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		parent, err := Unmarshal(v.Parent)
		if err != nil {
			return nil, fmt.Errorf("decoding derived parent: %w", err)
		}
		return &Derived{Parent: parent, Start: v.Start, End: v.End}, nil
	case kindComposite:
		var v compositeJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		pieces := make([]Piece, len(v.Pieces))
		for i, pj := range v.Pieces {
			src, err := Unmarshal(pj.Source)
			if err != nil {
				return nil, fmt.Errorf("decoding composite piece %d: %w", i, err)
			}
			pieces[i] = Piece{Source: src, Offset: pj.Offset, Length: pj.Length}
		}
		return &Composite{Pieces: pieces}, nil
	case kindStage:
		var v stageJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &Stage{Name: v.Name, Line: v.Line}, nil
	default:
		return nil, fmt.Errorf("unknown provenance kind %q", tag.Kind)
	}
}
