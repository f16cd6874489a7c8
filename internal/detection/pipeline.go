package detection

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/crime-detection/internal/metrics"
)

// FrameSource yields decoded frames in order. Next returns io.EOF after
// the last frame.
type FrameSource interface {
	Next() (image.Image, error)
	Close() error
}

// FrameSkipper is implemented by sources that can discard a frame
// without building an image for it.
type FrameSkipper interface {
	Skip() error
}

// Detector runs the model over a batch of images and returns one
// prediction per image, in order.
type Detector interface {
	Predict(ctx context.Context, images []image.Image) ([]RawPrediction, error)
}

type VideoReport struct {
	Results     []FrameResult
	TotalFrames int
}

type Pipeline struct {
	detector Detector
	metrics  *metrics.Metrics
	log      *zap.Logger
	stride   int
	batch    int
}

func NewPipeline(detector Detector, m *metrics.Metrics, log *zap.Logger) *Pipeline {
	return &Pipeline{
		detector: detector,
		metrics:  m,
		log:      log,
		stride:   SampleStride,
		batch:    BatchSize,
	}
}

type pending struct {
	indices []int
	images  []image.Image
}

func (b *pending) reset() {
	b.indices = b.indices[:0]
	b.images = b.images[:0]
}

// Run samples every stride-th frame and sends full batches to the
// detector, flushing the last partial batch at end of stream. Only one
// batch of frames is held at a time. A source that fails before
// yielding any frame reports ErrUnreadableMedia.
func (p *Pipeline) Run(ctx context.Context, src FrameSource, threshold float64) (*VideoReport, error) {
	report := &VideoReport{Results: []FrameResult{}}
	batch := &pending{
		indices: make([]int, 0, p.batch),
		images:  make([]image.Image, 0, p.batch),
	}

	for index := 0; ; index++ {
		sampled := index%p.stride == 0
		frame, err := p.next(src, sampled)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if index == 0 {
				return nil, fmt.Errorf("%w: %v", ErrUnreadableMedia, err)
			}
			p.log.Warn("video decoding stopped early",
				zap.Int("frames_decoded", index),
				zap.Error(err),
			)
			break
		}

		report.TotalFrames++
		p.metrics.ObserveDecoded()

		if !sampled {
			continue
		}

		batch.indices = append(batch.indices, index)
		batch.images = append(batch.images, frame)

		if len(batch.images) >= p.batch {
			if err := p.flush(ctx, batch, threshold, report); err != nil {
				return nil, err
			}
		}
	}

	if len(batch.images) > 0 {
		if err := p.flush(ctx, batch, threshold, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (p *Pipeline) next(src FrameSource, sampled bool) (image.Image, error) {
	if !sampled {
		if s, ok := src.(FrameSkipper); ok {
			return nil, s.Skip()
		}
	}
	return src.Next()
}

func (p *Pipeline) flush(ctx context.Context, batch *pending, threshold float64, report *VideoReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	preds, err := p.detector.Predict(ctx, batch.images)
	p.metrics.ObserveBatch(len(batch.images), time.Since(start))
	if err != nil {
		return err
	}

	for i, frameIndex := range batch.indices {
		var raw *RawPrediction
		if i < len(preds) {
			raw = &preds[i]
		}
		res := Normalize(raw, frameIndex, sizeOf(batch.images[i]), threshold)
		p.metrics.ObserveFrame(res.Failed(), res.Detected)
		report.Results = append(report.Results, res)
	}

	batch.reset()
	return nil
}

func sizeOf(img image.Image) FrameSize {
	b := img.Bounds()
	return FrameSize{Height: b.Dy(), Width: b.Dx()}
}
