package testutil

import "fmt"

// IDSource hands out deterministic run ids so tests and golden
// snapshots do not depend on random uuids. The store only generates
// an id when the caller left it empty, so tests that want stable ids
// set them from a source like this.
type IDSource struct {
	prefix string
	next   int
}

// NewIDSource creates an id source. Ids look like "<prefix>-000001".
func NewIDSource(prefix string) *IDSource {
	return &IDSource{prefix: prefix}
}

// Next returns the next id in sequence, starting at 1.
func (s *IDSource) Next() string {
	s.next++
	return fmt.Sprintf("%s-%06d", s.prefix, s.next)
}
