// lc3bin.go reads and writes the .lc3 stream container: a fixed
// little-endian header followed by length-prefixed frames. The layout
// matches the liblc3 tools so streams are exchangeable with them.
package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	lc3binMagic      = 0xcc1c
	lc3binHeaderSize = 18
)

var errNotLc3Stream = errors.New("lc3: not an lc3 stream")

// streamHeader describes one mono .lc3 stream.
type streamHeader struct {
	SrHz    int
	Bitrate int
	DtUs    int
	Samples uint32
}

func writeStreamHeader(w io.Writer, h streamHeader) error {
	var buf [lc3binHeaderSize]byte
	binary.LittleEndian.PutUint16(buf[0:], lc3binMagic)
	binary.LittleEndian.PutUint16(buf[2:], lc3binHeaderSize)
	binary.LittleEndian.PutUint16(buf[4:], uint16(h.SrHz/100))
	binary.LittleEndian.PutUint16(buf[6:], uint16(h.Bitrate/100))
	binary.LittleEndian.PutUint16(buf[8:], 1) // channels
	binary.LittleEndian.PutUint16(buf[10:], uint16(h.DtUs/10))
	binary.LittleEndian.PutUint16(buf[12:], 0) // error protection mode
	binary.LittleEndian.PutUint32(buf[14:], h.Samples)
	_, err := w.Write(buf[:])
	return err
}

func readStreamHeader(r io.Reader) (streamHeader, error) {
	var buf [lc3binHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return streamHeader{}, err
	}
	if binary.LittleEndian.Uint16(buf[0:]) != lc3binMagic {
		return streamHeader{}, errNotLc3Stream
	}
	size := int(binary.LittleEndian.Uint16(buf[2:]))
	if size < lc3binHeaderSize {
		return streamHeader{}, errNotLc3Stream
	}
	h := streamHeader{
		SrHz:    int(binary.LittleEndian.Uint16(buf[4:])) * 100,
		Bitrate: int(binary.LittleEndian.Uint16(buf[6:])) * 100,
		DtUs:    int(binary.LittleEndian.Uint16(buf[10:])) * 10,
		Samples: binary.LittleEndian.Uint32(buf[14:]),
	}
	if ch := binary.LittleEndian.Uint16(buf[8:]); ch != 1 {
		return streamHeader{}, fmt.Errorf("lc3: %d channels, only mono streams are supported", ch)
	}
	// Skip any header extension beyond the fields we understand.
	if size > lc3binHeaderSize {
		if _, err := io.CopyN(io.Discard, r, int64(size-lc3binHeaderSize)); err != nil {
			return streamHeader{}, err
		}
	}
	return h, nil
}

// writeFrame emits one length-prefixed frame. A zero length records a
// lost packet so decoders exercise concealment on playback.
func writeFrame(w io.Writer, frame []byte) error {
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(len(frame)))
	if _, err := w.Write(n[:]); err != nil {
		return err
	}
	_, err := w.Write(frame)
	return err
}

// readFrame returns the next frame, reusing buf when it is large
// enough. io.EOF marks the end of the stream.
func readFrame(r io.Reader, buf []byte) ([]byte, error) {
	var n [2]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	size := int(binary.LittleEndian.Uint16(n[:]))
	if size == 0 {
		return buf[:0], nil
	}
	if size > len(buf) {
		buf = make([]byte, size)
	}
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return nil, fmt.Errorf("lc3: truncated frame: %w", err)
	}
	return buf[:size], nil
}
