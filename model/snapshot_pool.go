package model

import "sync"

var snapshots = NewSnapshotPool()

// SnapshotPool recycles the buffers synchronous updates copy the previous
// generation into.
type SnapshotPool struct {
	pool sync.Pool
}

func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new([]bool)
			},
		},
	}
}

// Get retrieves a buffer of exactly size entries
func (p *SnapshotPool) Get(size int) []bool {
	buf := p.pool.Get().(*[]bool)
	if cap(*buf) < size {
		*buf = make([]bool, size)
	}
	return (*buf)[:size]
}

// Put returns a buffer to the pool, clearing its state
func (p *SnapshotPool) Put(buf []bool) {
	clear(buf)
	p.pool.Put(&buf)
}
