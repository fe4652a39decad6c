// Package golc3 implements a low-complexity, low-latency audio frame
// codec in pure Go.
//
// The codec operates on fixed frame durations (2.5, 5, 7.5 or 10 ms)
// at a fixed set of sample rates (8 to 48 kHz), compressing each PCM
// frame into a caller-chosen byte budget between 20 and 400 bytes.
// There is no bit reservoir: every frame is coded strictly within its
// budget, and the budget may change freely from frame to frame.
//
// # Instances
//
// An Encoder or Decoder instance owns a fixed block of state sized at
// construction; encoding and decoding never allocate. Instances are
// NOT safe for concurrent use; each goroutine should create its own.
// Independent instances share nothing and may run in parallel.
//
// # PCM access
//
// Frames cross the API as byte buffers addressed by sample format and
// a byte stride, so one channel of an interleaved multi-channel buffer
// can be processed in place. Typed []int16 and []float32 convenience
// methods cover the common packed mono case. When the PCM rate differs
// from the codec rate, the instance resamples internally.
//
// # Packet loss
//
// Passing an empty compressed frame to Decode signals a lost packet:
// the decoder synthesizes a plausible frame from its history instead
// of failing, and keeps doing so with decaying energy across sustained
// loss. Concealment is a designed success path, reported through the
// Result value rather than an error.
//
// # Handle API
//
// For callers marshaling across a foreign-function boundary, the
// package-level CreateEncoder/Encode/FreeEncoder family mirrors the
// instance API over generation-checked integer handles, so a stale
// handle is a detected error rather than undefined behavior.
package golc3
