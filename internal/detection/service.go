package detection

import (
	"context"
	"errors"
	"image"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/crime-detection/internal/metrics"
)

// VideoOpener starts decoding the video at path into frames already
// scaled to the processing size.
type VideoOpener interface {
	Open(ctx context.Context, path string) (FrameSource, error)
}

// Service is shared across requests; the threshold travels with each
// call.
type Service struct {
	pipeline *Pipeline
	detector Detector
	videos   VideoOpener
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewService(
	detector Detector,
	videos VideoOpener,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	return &Service{
		pipeline: NewPipeline(detector, m, log),
		detector: detector,
		videos:   videos,
		metrics:  m,
		log:      log,
	}
}

// DetectVideo returns one record per sampled frame. Unreadable input
// yields a single error record instead of an error.
func (s *Service) DetectVideo(ctx context.Context, path string, threshold float64) (*VideoReport, error) {
	src, err := s.videos.Open(ctx, path)
	if err != nil {
		s.log.Warn("video open failed", zap.Error(err))
		return unreadable(), nil
	}
	defer src.Close()

	report, err := s.pipeline.Run(ctx, src, threshold)
	if errors.Is(err, ErrUnreadableMedia) {
		s.log.Warn("video unreadable", zap.Error(err))
		return unreadable(), nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func unreadable() *VideoReport {
	return &VideoReport{
		Results: []FrameResult{errorResult(0, ErrUnreadableMedia.Error())},
	}
}

// DetectImage runs a single frame through the model at index 0.
// Decoding problems come back as an error record; only backend
// failures are returned as errors.
func (s *Service) DetectImage(ctx context.Context, data []byte, threshold float64) (FrameResult, error) {
	img, _, err := DecodeImage(data)
	if err != nil {
		return errorResult(0, err.Error()), nil
	}

	frame := Resize(img, ProcessingSize)
	preds, err := s.detector.Predict(ctx, []image.Image{frame})
	if err != nil {
		return FrameResult{}, err
	}

	var raw *RawPrediction
	if len(preds) > 0 {
		raw = &preds[0]
	}
	res := Normalize(raw, 0, sizeOf(frame), threshold)
	s.metrics.ObserveFrame(res.Failed(), res.Detected)
	return res, nil
}
