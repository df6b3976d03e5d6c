package http

import (
	"runtime"
	"sync/atomic"
)

// ringBuffer is a bounded lock-free MPMC queue. Each slot carries a
// sequence number telling producers and consumers whose turn it is.
type ringBuffer[T any] struct {
	slots []ringSlot[T]
	mask  uint64
	head  atomic.Uint64
	tail  atomic.Uint64
}

type ringSlot[T any] struct {
	seq   atomic.Uint64
	value T
}

// newRingBuffer rounds size up to a power of two.
func newRingBuffer[T any](size int) *ringBuffer[T] {
	n := 1
	for n < size {
		n <<= 1
	}

	rb := &ringBuffer[T]{
		slots: make([]ringSlot[T], n),
		mask:  uint64(n - 1),
	}
	for i := range rb.slots {
		rb.slots[i].seq.Store(uint64(i))
	}
	return rb
}

// push reports false when the buffer is full.
func (rb *ringBuffer[T]) push(value T) bool {
	for {
		pos := rb.head.Load()
		slot := &rb.slots[pos&rb.mask]

		switch diff := int64(slot.seq.Load()) - int64(pos); {
		case diff == 0:
			if rb.head.CompareAndSwap(pos, pos+1) {
				slot.value = value
				slot.seq.Store(pos + 1)
				return true
			}
		case diff < 0:
			return false
		default:
			runtime.Gosched()
		}
	}
}

// pop reports false when the buffer is empty.
func (rb *ringBuffer[T]) pop() (T, bool) {
	var zero T
	for {
		pos := rb.tail.Load()
		slot := &rb.slots[pos&rb.mask]

		switch diff := int64(slot.seq.Load()) - int64(pos+1); {
		case diff == 0:
			if rb.tail.CompareAndSwap(pos, pos+1) {
				value := slot.value
				slot.value = zero
				slot.seq.Store(pos + rb.mask + 1)
				return value, true
			}
		case diff < 0:
			return zero, false
		default:
			runtime.Gosched()
		}
	}
}

// contextPool recycles Contexts between requests. It never blocks: an
// empty pool allocates and a full pool drops the returned Context.
type contextPool struct {
	ready *ringBuffer[*Context]
}

func newContextPool(size int) *contextPool {
	return &contextPool{ready: newRingBuffer[*Context](size)}
}

func (p *contextPool) acquire() *Context {
	if c, ok := p.ready.pop(); ok {
		return c
	}
	return &Context{}
}

func (p *contextPool) release(c *Context) {
	c.reset(nil, nil, nil)
	p.ready.push(c)
}
