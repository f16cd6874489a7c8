package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/crime-detection/internal/detection"
	"github.com/BruksfildServices01/crime-detection/internal/metrics"
	"github.com/BruksfildServices01/crime-detection/internal/storage"
	"github.com/BruksfildServices01/crime-detection/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

type fakeDetection struct {
	threshold float64
	path      string
	video     *detection.VideoReport
	image     detection.FrameResult
	err       error
}

func (f *fakeDetection) DetectVideo(_ context.Context, path string, threshold float64) (*detection.VideoReport, error) {
	f.path = path
	f.threshold = threshold
	return f.video, f.err
}

func (f *fakeDetection) DetectImage(_ context.Context, _ []byte, threshold float64) (detection.FrameResult, error) {
	f.threshold = threshold
	return f.image, f.err
}

type memArchive struct {
	keys []string
}

func (a *memArchive) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	_, _ = io.Copy(io.Discard, body)
	a.keys = append(a.keys, key)
	return nil
}

func multipartBody(t *testing.T, contentType string, size int, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="clip.mp4"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{1}, size))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func detectionRouter(svc DetectionService, archive *memArchive) *gin.Engine {
	r := gin.New()
	var a storage.Archive
	if archive != nil {
		a = archive
	}
	h := NewDetectionHandler(svc, a, metrics.New(), zap.NewNop())
	r.POST("/detection/video", h.DetectVideo)
	r.POST("/detection/image", h.DetectImage)
	return r
}

func post(r http.Handler, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDetectVideo(t *testing.T) {
	svc := &fakeDetection{video: &detection.VideoReport{
		TotalFrames: 45,
		Results: []detection.FrameResult{
			{FrameIndex: 0, Detections: []detection.Detection{}},
			{FrameIndex: 10, Detected: true, Confidence: 0.8},
		},
	}}
	archive := &memArchive{}
	r := detectionRouter(svc, archive)

	body, ct := multipartBody(t, "video/mp4", 3*1024*1024, map[string]string{"confidence": "0.6"})
	w := post(r, "/detection/video", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool                   `json:"success"`
		Data    VideoDetectionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 45, resp.Data.Metadata.TotalFrames)
	assert.Equal(t, 2, resp.Data.Metadata.ProcessedFrames)
	assert.Equal(t, 3.0, resp.Data.Metadata.FileSizeMB)
	assert.Equal(t, 0.6, svc.threshold)
	assert.True(t, strings.HasSuffix(svc.path, ".mp4"))
	assert.Len(t, archive.keys, 1)
}

func TestDetectVideoRejectsNonVideo(t *testing.T) {
	r := detectionRouter(&fakeDetection{}, nil)
	body, ct := multipartBody(t, "image/png", 10, nil)

	w := post(r, "/detection/video", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file_must_be_video")
}

func TestDetectVideoBadConfidence(t *testing.T) {
	r := detectionRouter(&fakeDetection{}, nil)
	for _, v := range []string{"1.5", "-0.1", "abc", "NaN"} {
		body, ct := multipartBody(t, "video/mp4", 10, map[string]string{"confidence": v})
		w := post(r, "/detection/video", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code, v)
		assert.Contains(t, w.Body.String(), "invalid_confidence", v)
	}
}

func TestDetectVideoBackendDown(t *testing.T) {
	r := detectionRouter(&fakeDetection{err: detection.ErrInferenceUnavailable}, nil)
	body, ct := multipartBody(t, "video/mp4", 10, nil)

	w := post(r, "/detection/video", body, ct)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "inference_unavailable")
}

func TestDetectImage(t *testing.T) {
	svc := &fakeDetection{image: detection.FrameResult{
		FrameIndex: 0,
		Detections: []detection.Detection{},
		FrameSize:  detection.FrameSize{Height: 320, Width: 320},
	}}
	r := detectionRouter(svc, nil)

	body, ct := multipartBody(t, "image/jpeg", 10, nil)
	w := post(r, "/detection/image", body, ct)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, detection.DefaultThreshold, svc.threshold)
	assert.Contains(t, w.Body.String(), `"detected":false`)

	body, ct = multipartBody(t, "video/mp4", 10, nil)
	w = post(r, "/detection/image", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file_must_be_image")
}

func TestDetectImageErrorResult(t *testing.T) {
	svc := &fakeDetection{image: detection.FrameResult{Error: "decoding image: unknown format"}}
	r := detectionRouter(svc, nil)

	body, ct := multipartBody(t, "image/png", 10, nil)
	w := post(r, "/detection/image", body, ct)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "detection_failed")
	assert.Contains(t, w.Body.String(), "unknown format")
}

func TestFileSizeMB(t *testing.T) {
	assert.Equal(t, 0.0, fileSizeMB(0))
	assert.Equal(t, 1.5, fileSizeMB(1024*1024*3/2))
	assert.Equal(t, 0.01, fileSizeMB(10*1024))
}

func TestSignupValidation(t *testing.T) {
	r := gin.New()
	h := NewAuthHandler(nil, nil, nil)
	r.POST("/auth/signup", h.Signup)

	cases := []string{
		`{"email":"bad","password":"Secret123","firstname":"a","lastname":"b"}`,
		`{"email":"a@b.com","password":"weakpass","firstname":"a","lastname":"b"}`,
		`{"email":"a@b.com","password":"Secret123","firstname":"a","lastname":"b","role":"root"}`,
	}
	for _, body := range cases {
		w := post(r, "/auth/signup", strings.NewReader(body), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "invalid_request", body)
	}
}

func TestShiftHandlerRejectsBadID(t *testing.T) {
	r := gin.New()
	h := NewShiftHandler(nil, nil, nil, nil, nil, nil)
	r.GET("/shifts/:id", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/shifts/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "shift_not_found")
}
