package detection

import (
	"context"
	"errors"
	"image"
	"io"
	"sync"
)

type sliceSource struct {
	frames int
	served int
	failAt int
	err    error
	closed bool
}

func newSource(frames int) *sliceSource {
	return &sliceSource{frames: frames, failAt: -1}
}

func (s *sliceSource) Next() (image.Image, error) {
	if s.served == s.failAt {
		return nil, s.err
	}
	if s.served >= s.frames {
		return nil, io.EOF
	}
	s.served++
	return image.NewRGBA(image.Rect(0, 0, ProcessingSize, ProcessingSize)), nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

// scriptedDetector returns the same boxes for every image and records
// batch sizes.
type scriptedDetector struct {
	mu      sync.Mutex
	boxes   []RawBox
	names   map[int]string
	batches []int
	short   bool
	err     error
}

func (d *scriptedDetector) Predict(_ context.Context, images []image.Image) ([]RawPrediction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.batches = append(d.batches, len(images))
	if d.err != nil {
		return nil, d.err
	}
	n := len(images)
	if d.short {
		n--
	}
	out := make([]RawPrediction, n)
	for i := range out {
		out[i] = RawPrediction{Boxes: d.boxes, Names: d.names}
	}
	return out, nil
}

type stubOpener struct {
	src FrameSource
	err error
}

func (o stubOpener) Open(context.Context, string) (FrameSource, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.src, nil
}

var errDecode = errors.New("moov atom not found")

func box(conf float64, cls int) RawBox {
	return RawBox{XYXY: []float64{1, 2, 30, 40}, Conf: &conf, Cls: &cls}
}

// skippingSource counts how many frames were materialized versus
// skipped.
type skippingSource struct {
	*sliceSource
	decoded int
	skipped int
}

func (s *skippingSource) Next() (image.Image, error) {
	img, err := s.sliceSource.Next()
	if err == nil {
		s.decoded++
	}
	return img, err
}

func (s *skippingSource) Skip() error {
	_, err := s.sliceSource.Next()
	if err == nil {
		s.skipped++
	}
	return err
}
