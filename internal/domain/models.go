package domain

import (
	"errors"
	"time"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported media format")
	ErrMediaTooLarge      = errors.New("media exceeds upload size limit")
	ErrUnreadableMedia    = errors.New("unreadable media")
	ErrNoPreviewAvailable = errors.New("no preview available")
	ErrInvalidConfidence  = errors.New("invalid confidence")
	ErrUnknownEngine      = errors.New("unknown detection engine")
)

type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

type Classification string

const (
	DeepfakeDetected Classification = "Deepfake Detected"
	Authentic        Classification = "Authentic Media"
)

// UploadedMedia is one ingested upload. Data holds the canonical PNG for
// images and the raw payload for video; Preview is empty when no frame
// could be decoded.
type UploadedMedia struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Kind        MediaKind `json:"kind"`
	Size        int64     `json:"size"`
	Data        []byte    `json:"-"`
	Preview     []byte    `json:"-"`
}

func (m *UploadedMedia) HasPreview() bool {
	return len(m.Preview) > 0
}

type DetectionResult struct {
	Classification Classification `json:"classification"`
	Confidence     float64        `json:"confidence"`
	Claims         []string       `json:"claims,omitempty"`
}

func (r DetectionResult) IsDeepfake() bool {
	return r.Classification == DeepfakeDetected
}

type ClaimStatus struct {
	Status string `json:"status"`
}

// ClaimVerification is keyed by claim text, so repeated claims share an entry.
type ClaimVerification map[string]ClaimStatus

type Report struct {
	Media       *UploadedMedia    `json:"media"`
	Result      DetectionResult   `json:"result"`
	Insights    string            `json:"insights,omitempty"`
	FactCheck   ClaimVerification `json:"fact_check,omitempty"`
	Verdict     string            `json:"verdict,omitempty"`
	Advisory    string            `json:"advisory"`
	Training    string            `json:"training"`
	PreviewNote string            `json:"preview_note,omitempty"`
	AnalyzedAt  time.Time         `json:"analyzed_at"`
}
