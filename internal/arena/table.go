package arena

import "github.com/mesh-intelligence/amber/pkg/ir"

const (
	chunkShift = 8
	chunkSize  = 1 << chunkShift // slots per chunk
	chunkMask  = chunkSize - 1

	// maxSlots bounds a table to what a 32-bit slot index can address.
	maxSlots = 1<<32 - 1
)

// slot holds one entity plus its generation counter. A slot is live between
// alloc and release; its generation only ever increases, so a handle minted
// for an earlier occupant can never match a later one.
type slot[S any] struct {
	gen  uint32
	live bool
	data S
}

// table is a chunked generational slot store for one entity kind. Growth
// appends whole chunks and never relocates existing ones, so the address and
// index of a stored shape stay valid for the life of the table. Released
// slots are recycled through a free list with their generation bumped.
//
// The table does no locking; the owning backend serializes mutation.
type table[S any] struct {
	chunks []*[chunkSize]slot[S]
	next   uint32 // high-water mark of slots ever allocated
	free   []uint32
}

func (t *table[S]) slot(idx uint32) *slot[S] {
	return &t.chunks[idx>>chunkShift][idx&chunkMask]
}

// alloc stores data in a fresh or recycled slot and returns its index and
// the generation the caller must mint into the handle.
func (t *table[S]) alloc(data S) (idx, gen uint32, err error) {
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
		s := t.slot(idx)
		s.data = data
		s.live = true
		return idx, s.gen, nil
	}
	if t.next == maxSlots {
		return 0, 0, ir.ErrExhausted
	}
	idx = t.next
	if int(idx>>chunkShift) == len(t.chunks) {
		t.chunks = append(t.chunks, new([chunkSize]slot[S]))
	}
	t.next++
	s := t.slot(idx)
	s.data = data
	s.gen = 1 // generation 0 is never minted, so a zero Handle is invalid
	s.live = true
	return idx, s.gen, nil
}

// get returns the shape stored at (idx, gen). It fails with ErrStaleHandle
// when the slot was released since the handle was minted, whether or not a
// new occupant has moved in.
func (t *table[S]) get(idx, gen uint32) (S, error) {
	var zero S
	if idx >= t.next {
		return zero, ir.ErrStaleHandle
	}
	s := t.slot(idx)
	if !s.live || s.gen != gen {
		return zero, ir.ErrStaleHandle
	}
	return s.data, nil
}

// release frees the slot at (idx, gen), returning the evicted shape so the
// caller can drop it from its canonical map. The generation is bumped here,
// at release time, so every outstanding handle to the old occupant goes
// stale immediately.
func (t *table[S]) release(idx, gen uint32) (S, error) {
	var zero S
	if idx >= t.next {
		return zero, ir.ErrStaleHandle
	}
	s := t.slot(idx)
	if !s.live || s.gen != gen {
		return zero, ir.ErrStaleHandle
	}
	data := s.data
	s.data = zero
	s.live = false
	s.gen++
	t.free = append(t.free, idx)
	return data, nil
}

// len reports the number of live slots.
func (t *table[S]) len() int {
	return int(t.next) - len(t.free)
}
