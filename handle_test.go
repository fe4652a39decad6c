package golc3

import (
	"bytes"
	"testing"
)

// TestHandle_EncodeDecode runs a frame through the handle-based API.
func TestHandle_EncodeDecode(t *testing.T) {
	eh, err := CreateEncoder(10000, 16000, 0)
	if err != nil {
		t.Fatalf("CreateEncoder: %v", err)
	}
	defer FreeEncoder(eh)
	dh, err := CreateDecoder(10000, 16000, 0)
	if err != nil {
		t.Fatalf("CreateDecoder: %v", err)
	}
	defer FreeDecoder(dh)

	n, _ := FrameSamples(10000, 16000)
	pcm := generateSineS16(16000, 440, n, 0, 0.5)
	frame := make([]byte, 40)
	if got := Encode(eh, FormatS16, pcm, 2, frame); got != 40 {
		t.Fatalf("Encode returned %d, want 40", got)
	}

	out := make([]byte, n*2)
	if got := Decode(dh, frame, FormatS16, out, 2); got != 0 {
		t.Fatalf("Decode returned %d, want 0", got)
	}
	// Empty input: concealed success.
	if got := Decode(dh, nil, FormatS16, out, 2); got != 0 {
		t.Errorf("concealment returned %d, want 0", got)
	}
	// Malformed input: call-local status 1, handle stays usable.
	if got := Decode(dh, make([]byte, 5), FormatS16, out, 2); got != 1 {
		t.Errorf("malformed returned %d, want 1", got)
	}
	if got := Decode(dh, frame, FormatS16, out, 2); got != 0 {
		t.Errorf("decode after malformed returned %d, want 0", got)
	}
}

// TestHandle_StaleDetection verifies use after free is a detected
// error, including when the slot has been reused.
func TestHandle_StaleDetection(t *testing.T) {
	h, err := CreateEncoder(10000, 16000, 0)
	if err != nil {
		t.Fatal(err)
	}
	FreeEncoder(h)

	n, _ := FrameSamples(10000, 16000)
	pcm := make([]byte, n*2)
	out := make([]byte, 40)
	if got := Encode(h, FormatS16, pcm, 2, out); got != -1 {
		t.Errorf("stale handle encode returned %d, want -1", got)
	}

	// Reuse the slot; the old handle must still be rejected.
	h2, err := CreateEncoder(10000, 16000, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer FreeEncoder(h2)
	if got := Encode(h, FormatS16, pcm, 2, out); got != -1 {
		t.Errorf("stale handle alive after slot reuse: %d", got)
	}
	if got := Encode(h2, FormatS16, pcm, 2, out); got != 40 {
		t.Errorf("fresh handle encode returned %d, want 40", got)
	}
}

// TestHandle_FreeIdempotent covers the zero handle and double free.
func TestHandle_FreeIdempotent(t *testing.T) {
	FreeEncoder(0)
	FreeDecoder(0)

	h, _ := CreateEncoder(10000, 16000, 0)
	FreeEncoder(h)
	FreeEncoder(h) // Second release is a no-op.

	d, _ := CreateDecoder(10000, 16000, 0)
	FreeDecoder(d)
	FreeDecoder(d)
}

// TestHandle_Create_Rejections verifies construction errors surface
// through the handle API.
func TestHandle_Create_Rejections(t *testing.T) {
	if h, err := CreateEncoder(1234, 16000, 0); err != ErrUnsupportedConfig || h != 0 {
		t.Errorf("got handle %d, err %v", h, err)
	}
	if h, err := CreateDecoder(10000, 44100, 0); err != ErrUnsupportedConfig || h != 0 {
		t.Errorf("got handle %d, err %v", h, err)
	}
}

// TestHandle_IndependentInstances checks two handles carry separate
// history.
func TestHandle_IndependentInstances(t *testing.T) {
	h1, _ := CreateEncoder(10000, 16000, 0)
	h2, _ := CreateEncoder(10000, 16000, 0)
	defer FreeEncoder(h1)
	defer FreeEncoder(h2)

	n, _ := FrameSamples(10000, 16000)
	warm := generateSineS16(16000, 440, n, 0, 0.5)
	probe := generateSineS16(16000, 900, n, 0, 0.5)
	buf := make([]byte, 40)

	// Warm h1 only, then probe both: outputs must differ.
	Encode(h1, FormatS16, warm, 2, buf)
	out1 := make([]byte, 40)
	out2 := make([]byte, 40)
	Encode(h1, FormatS16, probe, 2, out1)
	Encode(h2, FormatS16, probe, 2, out2)
	if bytes.Equal(out1, out2) {
		t.Error("instances share history")
	}
}
