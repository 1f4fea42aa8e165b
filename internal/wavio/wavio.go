// Package wavio reads and writes 16-bit PCM WAV files block by block. A
// Reader is a stream.Source and a Writer is a stream.Sink, standing in for
// capture and playback devices.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

var (
	// ErrInvalidFile is returned when the input is not a readable WAV file.
	ErrInvalidFile = errors.New("wavio: invalid wav file")
	// ErrUnsupported is returned for WAV formats other than 16-bit PCM.
	ErrUnsupported = errors.New("wavio: unsupported wav format")
)

// Reader decodes a WAV file. Multi-channel files are mixed down to mono.
type Reader struct {
	dec    *wav.Decoder
	closer io.Closer
	buf    *audio.IntBuffer
	chans  int
	rate   int
}

// NewReader validates the header of r and prepares block reads.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	if dec.BitDepth != bitDepth || dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: %d-bit, format %d", ErrUnsupported, dec.BitDepth, dec.WavAudioFormat)
	}

	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFile, dec.NumChans, dec.SampleRate)
	}

	chans := int(dec.NumChans)
	rate := int(dec.SampleRate)

	return &Reader{
		dec:   dec,
		chans: chans,
		rate:  rate,
		buf:   &audio.IntBuffer{Format: &audio.Format{NumChannels: chans, SampleRate: rate}},
	}, nil
}

// Open opens path for reading. Close releases the file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r.closer = f

	return r, nil
}

// SampleRate returns the sample rate in Hz.
func (r *Reader) SampleRate() int { return r.rate }

// Channels returns the channel count of the file.
func (r *Reader) Channels() int { return r.chans }

// ReadBlock reads up to len(buf) mono frames. It returns io.EOF when the
// data chunk is exhausted.
func (r *Reader) ReadBlock(buf []int16) (int, error) {
	want := len(buf) * r.chans
	if cap(r.buf.Data) < want {
		r.buf.Data = make([]int, want)
	}

	r.buf.Data = r.buf.Data[:want]

	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil {
		return 0, fmt.Errorf("wavio: decode: %w", err)
	}

	frames := n / r.chans
	if frames == 0 {
		return 0, io.EOF
	}

	for i := range frames {
		sum := 0
		for c := range r.chans {
			sum += r.buf.Data[i*r.chans+c]
		}

		buf[i] = int16(sum / r.chans)
	}

	return frames, nil
}

// Close closes the underlying file when the Reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// Writer encodes mono 16-bit PCM.
type Writer struct {
	enc    *wav.Encoder
	closer io.Closer
	buf    *audio.IntBuffer
}

// NewWriter writes a mono WAV stream at sampleRate to w.
func NewWriter(w io.WriteSeeker, sampleRate int) (*Writer, error) {
	if sampleRate <= 0 || sampleRate > math.MaxInt32 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupported, sampleRate)
	}

	return &Writer{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, 1, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Create creates path and returns a Writer for it.
func Create(path string, sampleRate int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w, err := NewWriter(f, sampleRate)
	if err != nil {
		f.Close()
		return nil, err
	}

	w.closer = f

	return w, nil
}

// WriteBlock appends buf to the data chunk.
func (w *Writer) WriteBlock(buf []int16) error {
	if cap(w.buf.Data) < len(buf) {
		w.buf.Data = make([]int, len(buf))
	}

	w.buf.Data = w.buf.Data[:len(buf)]
	for i, v := range buf {
		w.buf.Data[i] = int(v)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	return nil
}

// Close finalises the header and closes the file created by Create.
func (w *Writer) Close() error {
	err := w.enc.Close()

	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}

	return err
}
