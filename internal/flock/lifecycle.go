package flock

import (
	"sync"

	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/quadtree"
)

// Lifecycle creates the Group at most once, as soon as world bounds are known.
type Lifecycle struct {
	mu     sync.Mutex
	group  *Group
	nextID uint32
	opts   []quadtree.Option
}

// NewLifecycle returns a lifecycle whose group index is built with opts.
func NewLifecycle(opts ...quadtree.Option) *Lifecycle {
	return &Lifecycle{opts: opts}
}

// Create builds the group sized to [0,0]x[width,height]. Only the first call
// creates anything; later calls return the existing group and false.
func (l *Lifecycle) Create(width, height float64, s Settings) (*Group, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.group != nil {
		return l.group, false
	}
	l.nextID++
	l.group = newGroup(l.nextID, width, height, s, l.opts...)
	return l.group, true
}

// Group returns the group, or nil before Create.
func (l *Lifecycle) Group() *Group {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.group
}
