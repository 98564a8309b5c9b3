// Package insights turns a detection result into the human-facing messages
// shown next to it. Everything here is simulated; nothing calls out.
package insights

import (
	"fmt"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
)

const NoDeepfakeMessage = "No deepfake signs detected!"

func Explain(result domain.DetectionResult) string {
	if result.IsDeepfake() {
		return fmt.Sprintf("Simulated analysis indicates deepfake artifacts with a confidence of %.2f. "+
			"Consider verifying with additional tools.", result.Confidence)
	}
	return fmt.Sprintf("Simulated analysis indicates the media is authentic with a confidence of %.2f.", result.Confidence)
}
