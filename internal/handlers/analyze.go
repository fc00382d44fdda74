package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reviewlens/backend/internal/config"
	"github.com/reviewlens/backend/internal/services"
	"github.com/reviewlens/backend/pkg/logger"
	"github.com/reviewlens/backend/pkg/response"
)

// AnalyzeHandler accepts file uploads for review.
type AnalyzeHandler struct {
	reviewService *services.ReviewService
	queue         services.TaskQueue
	maxFileSize   int64
}

func NewAnalyzeHandler(reviewService *services.ReviewService, queue services.TaskQueue, uploadCfg *config.UploadConfig) *AnalyzeHandler {
	return &AnalyzeHandler{
		reviewService: reviewService,
		queue:         queue,
		maxFileSize:   uploadCfg.MaxFileSizeMB * 1024 * 1024,
	}
}

// readUpload validates and reads one uploaded file.
func (h *AnalyzeHandler) readUpload(fh *multipart.FileHeader) (string, []byte, error) {
	filename := fh.Filename
	if filename == "" {
		return "", nil, response.NewBadRequest("no file selected")
	}
	if !services.AllowedExtension(filename) {
		return "", nil, response.NewBadRequest(fmt.Sprintf(
			"file type not allowed, supported: %s",
			strings.Join(services.AllowedExtensions(), ", ")))
	}
	if fh.Size > h.maxFileSize {
		return "", nil, response.NewBadRequest(fmt.Sprintf(
			"file too large, limit is %d MB", h.maxFileSize/(1024*1024)))
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, response.NewServerError("failed to read uploaded file")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, response.NewServerError("failed to read uploaded file")
	}
	return filename, content, nil
}

// Review handles POST /api/review. The file is analyzed synchronously and
// the stored review returned.
func (h *AnalyzeHandler) Review(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, response.NewBadRequest("no file provided"))
		return
	}

	filename, content, err := h.readUpload(fh)
	if err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.reviewService.ProcessFile(c.Request.Context(), filename, content)
	if err != nil {
		logger.Error().Err(err).Str("filename", filename).Msg("review failed")
		response.Error(c, err)
		return
	}

	response.Created(c, review)
}

// BatchReview handles POST /api/batch-review. Files are queued for
// analysis and task ids returned immediately.
func (h *AnalyzeHandler) BatchReview(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, response.NewBadRequest("invalid multipart form"))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, response.NewBadRequest("no files provided"))
		return
	}

	type batchEntry struct {
		Filename string `json:"filename"`
		TaskID   string `json:"task_id,omitempty"`
		Error    string `json:"error,omitempty"`
	}
	accepted := make([]batchEntry, 0, len(files))
	rejected := make([]batchEntry, 0)

	// Per-file validation: a bad file is reported, not fatal to the batch.
	for _, fh := range files {
		filename, content, err := h.readUpload(fh)
		if err != nil {
			rejected = append(rejected, batchEntry{Filename: fh.Filename, Error: err.Error()})
			continue
		}

		task := &services.AnalysisTask{
			TaskID:   uuid.New().String(),
			Filename: filename,
			Content:  string(content),
		}
		if err := h.queue.Enqueue(task); err != nil {
			logger.Error().Err(err).Str("filename", filename).Msg("enqueue failed")
			rejected = append(rejected, batchEntry{Filename: filename, Error: "failed to queue for analysis"})
			continue
		}
		accepted = append(accepted, batchEntry{Filename: filename, TaskID: task.TaskID})
	}

	logger.Info().
		Int("accepted", len(accepted)).
		Int("rejected", len(rejected)).
		Bool("async", h.queue.IsAsync()).
		Msg("batch queued")

	response.Accepted(c, gin.H{
		"accepted": accepted,
		"rejected": rejected,
		"async":    h.queue.IsAsync(),
	})
}
