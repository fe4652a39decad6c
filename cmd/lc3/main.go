// Command lc3 converts between WAV files and .lc3 frame streams.
//
// Usage:
//
//	lc3 encode -i speech.wav -o speech.lc3 -bitrate 32000 -frame-us 10000
//	lc3 decode -i speech.lc3 -o speech.wav
//
// Encoding requires mono 16-bit PCM at a supported rate. The log level
// is taken from the LOG_LEVEL environment variable (debug, info, warn,
// error).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lc3codec/golc3"
)

func initLogger() {
	var level zerolog.Level
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s encode|decode [flags]\n", os.Args[0])
	os.Exit(2)
}

func main() {
	initLogger()
	if len(os.Args) < 2 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("conversion failed")
	}
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	in := fs.String("i", "", "input WAV file (mono, 16-bit PCM)")
	out := fs.String("o", "", "output .lc3 file")
	bitrate := fs.Int("bitrate", 32000, "target bitrate in bps")
	frameUs := fs.Int("frame-us", 10000, "frame duration in microseconds")
	fs.Parse(args)
	if *in == "" || *out == "" {
		return fmt.Errorf("encode: -i and -o are required")
	}

	pcm, srHz, err := readWav(*in)
	if err != nil {
		return err
	}

	enc, err := golc3.NewEncoder(*frameUs, srHz, 0)
	if err != nil {
		return fmt.Errorf("encode: unsupported configuration %dus/%dHz: %w", *frameUs, srHz, err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	frameBytes := golc3.FrameBytes(*bitrate, *frameUs)
	if err := writeStreamHeader(f, streamHeader{
		SrHz:    srHz,
		Bitrate: golc3.Bitrate(frameBytes, *frameUs),
		DtUs:    *frameUs,
		Samples: uint32(len(pcm)),
	}); err != nil {
		return err
	}

	frameLen := enc.FrameSamples()
	frame := make([]byte, frameBytes)
	window := make([]int16, frameLen)
	frames := 0
	for off := 0; off < len(pcm); off += frameLen {
		// The tail frame is zero padded to the full duration.
		for i := range window {
			window[i] = 0
		}
		copy(window, pcm[off:])
		n, err := enc.EncodeInt16(window, frame)
		if err != nil {
			return fmt.Errorf("encode frame %d: %w", frames, err)
		}
		if err := writeFrame(f, frame[:n]); err != nil {
			return err
		}
		frames++
	}

	log.Info().
		Str("input", *in).
		Str("output", *out).
		Int("sample_rate", srHz).
		Int("frame_us", *frameUs).
		Int("frame_bytes", frameBytes).
		Int("frames", frames).
		Msg("encoded")
	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("i", "", "input .lc3 file")
	out := fs.String("o", "", "output WAV file")
	fs.Parse(args)
	if *in == "" || *out == "" {
		return fmt.Errorf("decode: -i and -o are required")
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := readStreamHeader(f)
	if err != nil {
		return err
	}
	dec, err := golc3.NewDecoder(h.DtUs, h.SrHz, 0)
	if err != nil {
		return fmt.Errorf("decode: unsupported configuration %dus/%dHz: %w", h.DtUs, h.SrHz, err)
	}

	frameLen := dec.FrameSamples()
	window := make([]int16, frameLen)
	buf := make([]byte, golc3.MaxFrameBytes)
	var pcm []int16
	frames, bad := 0, 0
	for {
		frame, err := readFrame(f, buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		res, err := dec.DecodeInt16(frame, window)
		if err != nil {
			// Malformed frames are concealed; keep the stream going.
			log.Warn().Int("frame", frames).Err(err).Msg("frame concealed")
			bad++
		} else if res == golc3.FrameConcealed {
			bad++
		}
		pcm = append(pcm, window...)
		frames++
	}
	if h.Samples > 0 && int(h.Samples) < len(pcm) {
		pcm = pcm[:h.Samples]
	}

	if err := writeWav(*out, pcm, h.SrHz); err != nil {
		return err
	}

	log.Info().
		Str("input", *in).
		Str("output", *out).
		Int("sample_rate", h.SrHz).
		Int("frames", frames).
		Int("concealed", bad).
		Uint64("total_concealed", dec.ConcealedFrames()).
		Msg("decoded")
	return nil
}

// readWav loads a mono 16-bit PCM WAV file.
func readWav(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	if buf.Format.NumChannels != 1 {
		return nil, 0, fmt.Errorf("%s: %d channels, only mono input is supported", path, buf.Format.NumChannels)
	}
	if d.BitDepth != 16 {
		return nil, 0, fmt.Errorf("%s: %d-bit samples, only 16-bit PCM is supported", path, d.BitDepth)
	}
	pcm := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		pcm[i] = int16(s)
	}
	return pcm, buf.Format.SampleRate, nil
}

// writeWav stores mono int16 samples as a 16-bit PCM WAV file.
func writeWav(path string, pcm []int16, srHz int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	e := wav.NewEncoder(f, srHz, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: srHz},
		Data:           make([]int, len(pcm)),
		SourceBitDepth: 16,
	}
	for i, s := range pcm {
		buf.Data[i] = int(s)
	}
	if err := e.Write(buf); err != nil {
		return err
	}
	return e.Close()
}
