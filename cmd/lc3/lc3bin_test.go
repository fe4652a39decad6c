package main

import (
	"bytes"
	"io"
	"testing"
)

func TestStreamHeader_RoundTrip(t *testing.T) {
	var b bytes.Buffer
	in := streamHeader{SrHz: 48000, Bitrate: 32000, DtUs: 10000, Samples: 48000}
	if err := writeStreamHeader(&b, in); err != nil {
		t.Fatal(err)
	}
	if b.Len() != lc3binHeaderSize {
		t.Fatalf("header is %d bytes, want %d", b.Len(), lc3binHeaderSize)
	}
	out, err := readStreamHeader(&b)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestStreamHeader_RejectsBadMagic(t *testing.T) {
	junk := make([]byte, lc3binHeaderSize)
	if _, err := readStreamHeader(bytes.NewReader(junk)); err != errNotLc3Stream {
		t.Fatalf("got %v, want errNotLc3Stream", err)
	}
}

func TestFrames_RoundTrip(t *testing.T) {
	var b bytes.Buffer
	frames := [][]byte{
		{0x10, 0x20, 0x30},
		{}, // recorded packet loss
		{0xff},
	}
	for _, f := range frames {
		if err := writeFrame(&b, f); err != nil {
			t.Fatal(err)
		}
	}

	buf := make([]byte, 4)
	for i, want := range frames {
		got, err := readFrame(&b, buf)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("frame %d: got % x, want % x", i, got, want)
		}
	}
	if _, err := readFrame(&b, buf); err != io.EOF {
		t.Fatalf("end of stream: got %v, want io.EOF", err)
	}
}
