package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/BruksfildServices01/crime-detection/internal/detection"
)

const jpegQuality = 90

type modelInfo struct {
	Name  string         `json:"name"`
	Names map[int]string `json:"names"`
}

type predictRequest struct {
	ImgSize int      `json:"imgsz"`
	Images  []string `json:"images"`
}

type predictResponse struct {
	Results []json.RawMessage `json:"results"`
}

// predictEntry requires the boxes key; a null entry or one without
// boxes is a failed frame, not an empty one.
type predictEntry struct {
	Boxes *[]detection.RawBox `json:"boxes"`
}

var errMissingEntry = errors.New("missing prediction entry")

// Client talks to the model backend over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
	model   string
	names   map[int]string
}

// NewClient verifies the backend has a model loaded; callers treat an
// error as fatal.
func NewClient(ctx context.Context, baseURL string, timeout time.Duration) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}

	info, err := c.fetchModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading model info: %w", err)
	}
	c.model = info.Name
	c.names = info.Names
	return c, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) fetchModel(ctx context.Context) (*modelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model endpoint returned %d", resp.StatusCode)
	}

	var info modelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding model info: %w", err)
	}
	return &info, nil
}

// Predict sends one batch. Transport and status failures wrap
// detection.ErrInferenceUnavailable; an entry that does not decode is
// returned with Err set so only that frame fails.
func (c *Client) Predict(ctx context.Context, images []image.Image) ([]detection.RawPrediction, error) {
	ctx, span := otel.Tracer("crime-detection/inference").Start(ctx, "inference.predict")
	defer span.End()
	span.SetAttributes(attribute.Int("inference.batch_size", len(images)))

	payload := predictRequest{
		ImgSize: detection.ProcessingSize,
		Images:  make([]string, 0, len(images)),
	}
	for _, img := range images {
		encoded, err := encodeJPEG(img)
		if err != nil {
			return nil, err
		}
		payload.Images = append(payload.Images, encoded)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", detection.ErrInferenceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		span.SetStatus(codes.Error, resp.Status)
		return nil, fmt.Errorf("%w: predict returned %d: %s",
			detection.ErrInferenceUnavailable, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: decoding predict response: %v", detection.ErrInferenceUnavailable, err)
	}

	out := make([]detection.RawPrediction, len(decoded.Results))
	for i, entry := range decoded.Results {
		boxes, err := decodeEntry(entry)
		if err != nil {
			out[i] = detection.RawPrediction{Err: err.Error()}
			continue
		}
		out[i] = detection.RawPrediction{Boxes: boxes, Names: c.names}
	}
	return out, nil
}

func decodeEntry(entry json.RawMessage) ([]detection.RawBox, error) {
	if trimmed := bytes.TrimSpace(entry); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errMissingEntry
	}

	var e predictEntry
	if err := json.Unmarshal(entry, &e); err != nil {
		return nil, err
	}
	if e.Boxes == nil {
		return nil, errors.New("prediction entry has no boxes")
	}
	return *e.Boxes, nil
}

func encodeJPEG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encoding frame: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
