package insights

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
)

const (
	AdvisoryHigh   = "Warning: High-confidence deepfake. Extra scrutiny recommended."
	AdvisoryMedium = "Medium confidence deepfake. Further manual review suggested."
	AdvisoryNone   = "No additional issues found."

	highConfidence = 0.8
)

// Advise picks one of three advisory messages. A non-finite confidence
// counts as 0.
func Advise(result domain.DetectionResult) string {
	confidence := result.Confidence
	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		confidence = 0
	}

	switch {
	case result.IsDeepfake() && confidence > highConfidence:
		return AdvisoryHigh
	case result.IsDeepfake():
		return AdvisoryMedium
	default:
		return AdvisoryNone
	}
}

// ParseConfidence accepts a JSON number or numeric string and rejects
// anything that is not a finite value in [0,1].
func ParseConfidence(raw any) (float64, error) {
	var c float64
	switch v := raw.(type) {
	case float64:
		c = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidConfidence, v)
		}
		c = parsed
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", domain.ErrInvalidConfidence, raw)
	}

	if err := CheckConfidence(c); err != nil {
		return 0, err
	}
	return c, nil
}

func CheckConfidence(c float64) error {
	if math.IsNaN(c) || c < 0 || c > 1 {
		return fmt.Errorf("%w: %v outside [0,1]", domain.ErrInvalidConfidence, c)
	}
	return nil
}
