package detection

import (
	"encoding/json"
	"errors"
)

const (
	SampleStride     = 10
	BatchSize        = 4
	ProcessingSize   = 320
	DefaultThreshold = 0.25
)

var (
	// ErrUnreadableMedia means the input could not be opened or decoded
	// at all.
	ErrUnreadableMedia = errors.New("could not open video file")

	// ErrInferenceUnavailable wraps transport failures talking to the
	// model backend.
	ErrInferenceUnavailable = errors.New("inference backend unavailable")
)

type Detection struct {
	BBox       [4]float64 `json:"bbox"`
	Confidence float64    `json:"confidence"`
	ClassID    int        `json:"class_id"`
	ClassName  string     `json:"class_name"`
}

type FrameSize struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// FrameResult is either a normalized prediction or, when Error is set,
// an error record carrying only the frame index.
type FrameResult struct {
	FrameIndex int         `json:"frame_index"`
	Detected   bool        `json:"detected"`
	Confidence float64     `json:"confidence"`
	Detections []Detection `json:"detections"`
	FrameSize  FrameSize   `json:"frame_size"`
	Error      string      `json:"error,omitempty"`
}

func (r FrameResult) Failed() bool {
	return r.Error != ""
}

type errorRecord struct {
	FrameIndex int    `json:"frame_index"`
	Error      string `json:"error"`
}

func (r FrameResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(errorRecord{FrameIndex: r.FrameIndex, Error: r.Error})
	}

	type plain FrameResult
	p := plain(r)
	if p.Detections == nil {
		p.Detections = []Detection{}
	}
	return json.Marshal(p)
}

func errorResult(frameIndex int, msg string) FrameResult {
	return FrameResult{FrameIndex: frameIndex, Error: msg}
}

// RawBox is one box as reported by the model backend.
type RawBox struct {
	XYXY []float64 `json:"xyxy"`
	Conf *float64  `json:"conf"`
	Cls  *int      `json:"cls"`
}

// RawPrediction is the backend output for one image. Err is set when
// the entry could not be decoded.
type RawPrediction struct {
	Boxes []RawBox       `json:"boxes"`
	Names map[int]string `json:"-"`
	Err   string         `json:"-"`
}
