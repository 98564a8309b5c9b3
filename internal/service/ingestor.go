package service

import (
	"errors"
	"fmt"
	"html"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/config"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
	"github.com/AnishkaKhobragade/DeFake-AI/pkg/utils"
)

type MediaIngestor interface {
	// Ingest reads one upload. A video without a decodable frame is returned
	// together with an error wrapping domain.ErrNoPreviewAvailable.
	Ingest(filename, declaredType string, body io.Reader) (*domain.UploadedMedia, error)
}

type mediaIngestor struct {
	cfg       *config.AppConfig
	log       *zap.Logger
	proc      *utils.ImageProcessor
	sanitizer *bluemonday.Policy
}

func NewMediaIngestor(cfg *config.AppConfig, log *zap.Logger) MediaIngestor {
	return &mediaIngestor{
		cfg:       cfg,
		log:       log,
		proc:      utils.NewImageProcessor(log, cfg.MaxImagePixels),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (i *mediaIngestor) allowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != "" && slices.Contains(i.cfg.AllowedFormats, ext)
}

func (i *mediaIngestor) Ingest(filename, declaredType string, body io.Reader) (*domain.UploadedMedia, error) {
	if !i.allowed(filename) {
		i.log.Warn("Ignoring unsupported upload", zap.String("filename", filename))
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(body, i.cfg.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > i.cfg.MaxUploadSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrMediaTooLarge, i.cfg.MaxUploadSize)
	}

	contentType := contentTypeOf(declaredType, filename, data)
	kind, err := kindOf(contentType)
	if err != nil {
		return nil, err
	}

	media := &domain.UploadedMedia{
		ID:          uuid.New().String(),
		Filename:    i.cleanName(filename),
		ContentType: contentType,
		Kind:        kind,
		Size:        int64(len(data)),
	}

	switch kind {
	case domain.KindImage:
		canonical, format, err := i.proc.Canonicalize(data)
		if err != nil {
			i.log.Warn("Image failed to decode",
				zap.String("filename", media.Filename),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableMedia, err)
		}
		media.Data = canonical
		media.Preview = canonical

		i.log.Info("Image ingested",
			zap.String("id", media.ID),
			zap.String("filename", media.Filename),
			zap.String("format", format),
			zap.Int64("size", media.Size))

	case domain.KindVideo:
		media.Data = data

		frame, err := i.proc.ExtractFirstFrame(data)
		if err != nil {
			i.log.Info("Video ingested without preview",
				zap.String("id", media.ID),
				zap.String("filename", media.Filename),
				zap.Error(err))
			return media, fmt.Errorf("%w: %v", domain.ErrNoPreviewAvailable, err)
		}
		media.Preview = frame

		i.log.Info("Video ingested",
			zap.String("id", media.ID),
			zap.String("filename", media.Filename),
			zap.Int64("size", media.Size))
	}

	return media, nil
}

// cleanName strips markup from a client supplied name. Entities are
// unescaped again since every renderer escapes on output.
func (i *mediaIngestor) cleanName(filename string) string {
	return html.UnescapeString(i.sanitizer.Sanitize(filepath.Base(filename)))
}

// contentTypeOf trusts the declared type unless it is missing or generic,
// in which case the payload is sniffed. A sniff that is neither image nor
// video defers to the extension, which already passed the allow-list, so a
// corrupt image still decodes as one and fails as unreadable.
func contentTypeOf(declared, filename string, data []byte) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}

	sniffed := mimetype.Detect(data).String()
	if _, err := kindOf(sniffed); err == nil {
		return sniffed
	}
	if byExt := TypeByExtension(filename); byExt != "" {
		return byExt
	}
	return sniffed
}

// videoTypes covers the container extensions missing from the builtin
// mime table.
var videoTypes = map[string]string{
	".mp4": "video/mp4",
	".m4v": "video/mp4",
	".mov": "video/quicktime",
}

func TypeByExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	t, _, _ := strings.Cut(mime.TypeByExtension(ext), ";")
	return t
}

func kindOf(contentType string) (domain.MediaKind, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return domain.KindImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return domain.KindVideo, nil
	default:
		return "", fmt.Errorf("%w: content type %q", domain.ErrUnsupportedFormat, contentType)
	}
}

// IsPreviewOnly reports whether err only signals a missing video preview.
func IsPreviewOnly(err error) bool {
	return errors.Is(err, domain.ErrNoPreviewAvailable)
}
