package stream

import "io"

// Source supplies captured blocks. ReadBlock fills buf from the start and
// returns the number of samples written. It returns io.EOF once no more
// samples are available; n may be non-zero alongside io.EOF.
type Source interface {
	ReadBlock(buf []int16) (n int, err error)
}

// Sink consumes processed blocks.
type Sink interface {
	WriteBlock(buf []int16) error
}

// SliceSource serves samples from memory.
type SliceSource struct {
	data []int16
	pos  int
}

// NewSliceSource returns a Source reading data.
func NewSliceSource(data []int16) *SliceSource {
	return &SliceSource{data: data}
}

// ReadBlock implements Source.
func (s *SliceSource) ReadBlock(buf []int16) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	n := copy(buf, s.data[s.pos:])
	s.pos += n

	return n, nil
}

// SliceSink collects every written block in memory.
type SliceSink struct {
	Samples []int16
}

// WriteBlock implements Sink.
func (s *SliceSink) WriteBlock(buf []int16) error {
	s.Samples = append(s.Samples, buf...)
	return nil
}
