package quadtree

const (
	// DefaultCapacity is the number of items a leaf holds before it splits.
	DefaultCapacity = 8
	// DefaultMaxDepth bounds the subdivision; leaves at this depth never split.
	DefaultMaxDepth = 8
)

type settings struct {
	capacity int
	maxDepth int
}

// Option configures a Tree at construction time.
type Option func(*settings)

// WithCapacity sets the leaf capacity. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(s *settings) {
		if n >= 1 {
			s.capacity = n
		}
	}
}

// WithMaxDepth sets the maximum subdivision depth. Negative values are ignored,
// 0 keeps everything in the root.
func WithMaxDepth(d int) Option {
	return func(s *settings) {
		if d >= 0 {
			s.maxDepth = d
		}
	}
}
