package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/config"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/insights"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/service"
)

const (
	mediaField = "media"

	// multipartOverhead leaves room for part headers and the claims field
	// on top of the media size limit.
	multipartOverhead = 64 << 10
)

type Handler struct {
	ingestor service.MediaIngestor
	analysis service.AnalysisService
	cfg      *config.Config
	log      *zap.Logger
}

func NewHandler(ingestor service.MediaIngestor, analysis service.AnalysisService, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		ingestor: ingestor,
		analysis: analysis,
		cfg:      cfg,
		log:      log,
	}
}

type pageData struct {
	Accept        string
	MaxUploadSize int64
	Claims        string
	Error         string
	Report        *domain.Report
	MediaJSON     string
	ResultJSON    string
}

func (h *Handler) newPage() pageData {
	return pageData{
		Accept:        strings.Join(h.cfg.App.AllowedFormats, ","),
		MaxUploadSize: h.cfg.App.MaxUploadSize,
	}
}

func (h *Handler) GetUI(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.newPage())
}

// AnalyzePage handles the form post. Unsupported uploads are ignored and
// the empty form is shown again.
func (h *Handler) AnalyzePage(c *gin.Context) {
	page := h.newPage()

	report, err := h.analyzeUpload(c)
	page.Claims = c.PostForm("claims")
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnsupportedFormat), errors.Is(err, http.ErrMissingFile):
		c.HTML(http.StatusOK, "index.html", page)
		return
	default:
		page.Error = userMessage(err)
		c.HTML(statusFor(err), "index.html", page)
		return
	}

	page.Report = report
	page.MediaJSON = toJSON(gin.H{"filename": report.Media.Filename, "filetype": report.Media.ContentType})
	page.ResultJSON = toJSON(report.Result)

	c.HTML(http.StatusOK, "index.html", page)
}

func (h *Handler) AnalyzeMedia(c *gin.Context) {
	report, err := h.analyzeUpload(c)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No media file provided"})
			return
		}
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) analyzeUpload(c *gin.Context) (*domain.Report, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.App.MaxUploadSize+multipartOverhead)

	file, err := c.FormFile(mediaField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warn("Upload body over limit", zap.Int64("limit", tooLarge.Limit))
			return nil, fmt.Errorf("%w: request body over %d bytes", domain.ErrMediaTooLarge, tooLarge.Limit)
		}
		h.log.Debug("No media in form", zap.Error(err))
		return nil, http.ErrMissingFile
	}

	f, err := file.Open()
	if err != nil {
		h.log.Error("Failed to open file", zap.Error(err))
		return nil, err
	}
	defer f.Close()

	media, err := h.ingestor.Ingest(file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil && !service.IsPreviewOnly(err) {
		h.log.Info("Upload rejected",
			zap.String("filename", file.Filename),
			zap.Error(err))
		return nil, err
	}

	report, err := h.analysis.Analyze(c.Request.Context(), media, parseClaims(c.PostForm("claims")))
	if err != nil {
		h.log.Error("Failed to analyze media",
			zap.String("id", media.ID),
			zap.Error(err))
		return nil, err
	}

	return report, nil
}

func (h *Handler) FactCheck(c *gin.Context) {
	var req struct {
		Claims []string `json:"claims" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": insights.VerifyClaims(req.Claims)})
}

func (h *Handler) Advise(c *gin.Context) {
	var req struct {
		Classification string `json:"classification" binding:"required"`
		Confidence     any    `json:"confidence"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	label := domain.Classification(req.Classification)
	if label != domain.DeepfakeDetected && label != domain.Authentic {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown classification: " + req.Classification})
		return
	}

	confidence, err := insights.ParseConfidence(req.Confidence)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advisory": insights.Advise(domain.DetectionResult{
		Classification: label,
		Confidence:     confidence,
	})})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrMediaTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrUnreadableMedia):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return "Unsupported file type"
	case errors.Is(err, domain.ErrMediaTooLarge):
		return "File too large"
	case errors.Is(err, domain.ErrUnreadableMedia):
		return "The uploaded image could not be read"
	default:
		return "Failed to analyze media"
	}
}

func parseClaims(raw string) []string {
	var claims []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			claims = append(claims, line)
		}
	}
	return claims
}

func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
