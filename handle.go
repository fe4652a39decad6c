// handle.go implements the handle-based boundary API: package-level
// create/encode/decode/free functions over an arena of instances
// addressed by generation-checked integer handles. A released or stale
// handle is a detected error, never undefined behavior. This is the
// surface a foreign-function marshaling layer consumes; Go callers
// normally use Encoder and Decoder directly.

package golc3

import "sync"

// Handle references an encoder or decoder instance held by the
// package arena. The zero Handle is never valid; freeing it is a
// no-op.
type Handle uint64

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

func (h Handle) index() uint32 { return uint32(h) }
func (h Handle) gen() uint32   { return uint32(h >> 32) }

// arena stores instances in reusable slots. The slot generation bumps
// on every release, so handles into reused slots fail the check. The
// mutex guards only slot bookkeeping; codec calls run outside it under
// the per-instance single-caller contract.
type arena[T any] struct {
	mu    sync.Mutex
	slots []arenaSlot[T]
	free  []uint32
}

type arenaSlot[T any] struct {
	gen  uint32
	val  *T
	live bool
}

func (a *arena[T]) put(v *T) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, arenaSlot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.val = v
	s.live = true
	if s.gen == 0 {
		// Generation 0 is reserved so the zero Handle stays invalid.
		s.gen = 1
	}
	return makeHandle(idx, s.gen)
}

func (a *arena[T]) get(h Handle) (*T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := h.index()
	if int(idx) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[idx]
	if !s.live || s.gen != h.gen() {
		return nil, false
	}
	return s.val, true
}

func (a *arena[T]) release(h Handle) {
	if h == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := h.index()
	if int(idx) >= len(a.slots) {
		return
	}
	s := &a.slots[idx]
	if !s.live || s.gen != h.gen() {
		return
	}
	s.val = nil
	s.live = false
	s.gen++
	a.free = append(a.free, idx)
}

var (
	encoders arena[Encoder]
	decoders arena[Decoder]
)

// CreateEncoder allocates an encoder instance and returns its handle.
// Parameters are as for NewEncoder. The instance is owned by the
// caller until FreeEncoder.
func CreateEncoder(dtUs, srHz, pcmHz int) (Handle, error) {
	enc, err := NewEncoder(dtUs, srHz, pcmHz)
	if err != nil {
		return 0, err
	}
	return encoders.put(enc), nil
}

// FreeEncoder releases the instance. Idempotent; a zero, released or
// stale handle is a no-op.
func FreeEncoder(h Handle) {
	encoders.release(h)
}

// Encode compresses one frame through a handle. The whole of out is
// the frame byte budget; returns the bytes written, or a negative
// value on any error (invalid handle, format, stride or buffer).
func Encode(h Handle, format PcmFormat, pcm []byte, strideBytes int, out []byte) int {
	enc, ok := encoders.get(h)
	if !ok {
		return -1
	}
	n, err := enc.Encode(format, pcm, strideBytes, out)
	if err != nil {
		return -1
	}
	return n
}

// CreateDecoder allocates a decoder instance and returns its handle.
func CreateDecoder(dtUs, srHz, pcmHz int) (Handle, error) {
	dec, err := NewDecoder(dtUs, srHz, pcmHz)
	if err != nil {
		return 0, err
	}
	return decoders.put(dec), nil
}

// FreeDecoder releases the instance. Idempotent; a zero, released or
// stale handle is a no-op.
func FreeDecoder(h Handle) {
	decoders.release(h)
}

// Decode produces one frame through a handle. Empty data triggers
// concealment. Returns 0 on success, concealed frames included; 1 when
// the input was structurally invalid (the frame is concealed and the
// handle remains usable); -1 on parameter errors.
func Decode(h Handle, data []byte, format PcmFormat, pcm []byte, strideBytes int) int {
	dec, ok := decoders.get(h)
	if !ok {
		return -1
	}
	_, err := dec.Decode(data, format, pcm, strideBytes)
	switch err {
	case nil:
		return 0
	case ErrMalformedFrame:
		return 1
	default:
		return -1
	}
}
