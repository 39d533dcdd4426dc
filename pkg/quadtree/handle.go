package quadtree

import "fmt"

// Handle identifies one stored item for the lifetime of the current build of
// the tree. The zero Handle means "not in the index".
//
// A Handle embeds the build generation it was issued in, so after Clear every
// previously issued handle is stale and rejected by Get, Remove and exclusion.
type Handle struct {
	gen  uint32
	slot uint32
}

// IsZero reports whether h is the "none" handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(none)"
	}
	return fmt.Sprintf("handle(%d:%d)", h.gen, h.slot)
}
