// Package bits implements MSB-first bit packing over caller-provided
// byte buffers. Both ends operate on pre-allocated storage so the hot
// path never allocates.
package bits

// Writer packs bits MSB-first into a caller-provided buffer.
// The buffer must be pre-allocated to the exact frame size; writing
// past the end sets the error flag instead of growing the buffer.
type Writer struct {
	buf     []byte
	bitPos  int // Next bit to write, counted from the start of buf
	overrun bool
}

// Init resets the writer onto buf and zeroes it. All subsequent writes
// land in buf; the caller keeps ownership.
func (w *Writer) Init(buf []byte) {
	w.buf = buf
	w.bitPos = 0
	w.overrun = false
	for i := range buf {
		buf[i] = 0
	}
}

// WriteBits writes the low n bits of v, MSB first. n must be 0-32.
func (w *Writer) WriteBits(v uint32, n int) {
	if n == 0 {
		return
	}
	if w.bitPos+n > len(w.buf)*8 {
		w.overrun = true
		return
	}
	for i := n - 1; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			w.buf[w.bitPos>>3] |= 0x80 >> uint(w.bitPos&7)
		}
		w.bitPos++
	}
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(b int) {
	w.WriteBits(uint32(b&1), 1)
}

// Tell returns the number of bits written so far.
func (w *Writer) Tell() int {
	return w.bitPos
}

// Overrun reports whether a write ran past the end of the buffer.
func (w *Writer) Overrun() bool {
	return w.overrun
}
