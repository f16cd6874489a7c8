package handlers

import (
	"context"
	"errors"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/crime-detection/internal/detection"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/httpresp"
	"github.com/BruksfildServices01/crime-detection/internal/metrics"
	"github.com/BruksfildServices01/crime-detection/internal/storage"
)

type DetectionService interface {
	DetectVideo(ctx context.Context, path string, threshold float64) (*detection.VideoReport, error)
	DetectImage(ctx context.Context, data []byte, threshold float64) (detection.FrameResult, error)
}

// ======================================================
// HANDLER
// ======================================================

type DetectionHandler struct {
	svc     DetectionService
	archive storage.Archive
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewDetectionHandler accepts a nil archive to skip archiving uploads.
func NewDetectionHandler(
	svc DetectionService,
	archive storage.Archive,
	m *metrics.Metrics,
	log *zap.Logger,
) *DetectionHandler {
	return &DetectionHandler{
		svc:     svc,
		archive: archive,
		metrics: m,
		log:     log,
	}
}

// ======================================================
// RESPONSES
// ======================================================

type VideoMetadata struct {
	TotalFrames     int     `json:"total_frames"`
	ProcessedFrames int     `json:"processed_frames"`
	FileSizeMB      float64 `json:"file_size_mb"`
}

type VideoDetectionResponse struct {
	Results  []detection.FrameResult `json:"results"`
	Metadata VideoMetadata           `json:"metadata"`
}

// ======================================================
// HELPERS
// ======================================================

func parseConfidence(c *gin.Context) (float64, bool) {
	raw := strings.TrimSpace(c.PostForm("confidence"))
	if raw == "" {
		return detection.DefaultThreshold, true
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeInvalidConfidence))
		return 0, false
	}
	return v, true
}

// upload reads the multipart file and checks its category.
func upload(c *gin.Context, prefix, code string) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "A file field is required")
		return nil, false
	}

	if !strings.HasPrefix(fh.Header.Get("Content-Type"), prefix) {
		httperr.Respond(c, httperr.ErrBusiness(code))
		return nil, false
	}
	return fh, true
}

func fileSizeMB(size int64) float64 {
	return math.Round(float64(size)/(1024*1024)*100) / 100
}

func saveTemp(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "detection-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

func (h *DetectionHandler) archiveUpload(ctx context.Context, kind string, fh *multipart.FileHeader) {
	if h.archive == nil {
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.log.Warn("archive: open upload failed", zap.Error(err))
		return
	}
	defer f.Close()

	key := storage.MediaKey(kind, fh.Filename, time.Now())
	if err := h.archive.Put(ctx, key, f, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		h.log.Warn("archive upload failed", zap.String("key", key), zap.Error(err))
	}
}

func (h *DetectionHandler) inferenceFailed(c *gin.Context, kind string, err error) {
	h.metrics.ObserveRequest(kind, "error")
	if errors.Is(err, detection.ErrInferenceUnavailable) {
		h.log.Error("inference backend failed", zap.String("kind", kind), zap.Error(err))
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeInferenceUnavailable))
		return
	}
	httperr.Respond(c, err)
}

// ======================================================
// VIDEO
// ======================================================

func (h *DetectionHandler) DetectVideo(c *gin.Context) {
	fh, ok := upload(c, "video/", httperr.CodeFileMustBeVideo)
	if !ok {
		return
	}

	threshold, ok := parseConfidence(c)
	if !ok {
		return
	}

	path, err := saveTemp(fh)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer os.Remove(path)

	h.archiveUpload(c.Request.Context(), "video", fh)

	report, err := h.svc.DetectVideo(c.Request.Context(), path, threshold)
	if err != nil {
		h.inferenceFailed(c, "video", err)
		return
	}

	h.metrics.ObserveRequest("video", "ok")
	httpresp.OK(c, VideoDetectionResponse{
		Results:  report.Results,
		Metadata: VideoMetadata{
			TotalFrames:     report.TotalFrames,
			ProcessedFrames: len(report.Results),
			FileSizeMB:      fileSizeMB(fh.Size),
		},
	})
}

// ======================================================
// IMAGE
// ======================================================

func (h *DetectionHandler) DetectImage(c *gin.Context) {
	fh, ok := upload(c, "image/", httperr.CodeFileMustBeImage)
	if !ok {
		return
	}

	threshold, ok := parseConfidence(c)
	if !ok {
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.archiveUpload(c.Request.Context(), "image", fh)

	res, err := h.svc.DetectImage(c.Request.Context(), data, threshold)
	if err != nil {
		h.inferenceFailed(c, "image", err)
		return
	}
	if res.Failed() {
		h.metrics.ObserveRequest("image", "error")
		httperr.Write(c, http.StatusInternalServerError, httperr.CodeDetectionFailed, res.Error)
		return
	}

	h.metrics.ObserveRequest("image", "ok")
	httpresp.OK(c, res)
}
