package handlers

import (
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"go.uber.org/zap"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
}

// UploadHandler stores multipart uploads and generates video thumbnails
type UploadHandler struct {
	storageDir string
	log        *zap.Logger
}

// NewUploadHandler creates a new UploadHandler writing into storageDir
func NewUploadHandler(storageDir string, log *zap.Logger) *UploadHandler {
	return &UploadHandler{storageDir: storageDir, log: log}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload", h.Upload)
}

// Upload saves the file under a generated name. Video uploads get a PNG
// thumbnail extracted with ffmpeg and returned as the banner URL.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	if err := os.MkdirAll(h.storageDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := uuid.NewString() + ext
	path := filepath.Join(h.storageDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	base := c.Scheme() + "://" + c.Request().Host + "/storage/"

	if !videoExtensions[ext] {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"type":    models.BlogTypeBlog,
			"url":     base + name,
		})
	}

	thumbName := strings.TrimSuffix(name, ext) + "-thumbnail.png"
	if err := h.generateThumbnail(path, filepath.Join(h.storageDir, thumbName)); err != nil {
		h.log.Error("thumbnail generation failed", zap.String("file", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error generating thumbnail")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"type":    models.BlogTypeVideo,
		"url":     base + name,
		"banner":  base + thumbName,
	})
}

// generateThumbnail grabs the first frame at 320x240
func (h *UploadHandler) generateThumbnail(videoPath, thumbPath string) error {
	cmd := exec.Command("ffmpeg",
		"-i", videoPath,
		"-vframes", "1",
		"-s", "320x240",
		"-y", thumbPath,
	)
	return cmd.Run()
}
