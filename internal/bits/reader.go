package bits

// Reader consumes bits MSB-first from a byte buffer. Reading past the
// end returns zeros and latches the error flag, letting the caller
// finish parsing and reject the frame once at the end.
type Reader struct {
	buf     []byte
	bitPos  int
	overrun bool
}

// Init resets the reader onto buf. The buffer is borrowed for the
// duration of the parse; the reader never writes to it.
func (r *Reader) Init(buf []byte) {
	r.buf = buf
	r.bitPos = 0
	r.overrun = false
}

// ReadBits reads n bits MSB-first. n must be 0-32.
func (r *Reader) ReadBits(n int) uint32 {
	if n == 0 {
		return 0
	}
	if r.bitPos+n > len(r.buf)*8 {
		r.overrun = true
		return 0
	}
	var v uint32
	for i := 0; i < n; i++ {
		v <<= 1
		if r.buf[r.bitPos>>3]&(0x80>>uint(r.bitPos&7)) != 0 {
			v |= 1
		}
		r.bitPos++
	}
	return v
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() int {
	return int(r.ReadBits(1))
}

// Tell returns the number of bits consumed so far.
func (r *Reader) Tell() int {
	return r.bitPos
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.buf)*8 - r.bitPos
}

// Overrun reports whether a read ran past the end of the buffer.
func (r *Reader) Overrun() bool {
	return r.overrun
}
