package insights

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
)

// TrainingRecorder marks where a model feedback loop would attach. It does
// not learn anything.
type TrainingRecorder struct {
	log *zap.Logger
}

func NewTrainingRecorder(log *zap.Logger) *TrainingRecorder {
	return &TrainingRecorder{log: log}
}

func (r *TrainingRecorder) RecordTrainingEvent(data []byte, result domain.DetectionResult) string {
	r.log.Info("Training event recorded",
		zap.String("event_id", uuid.New().String()),
		zap.String("label", string(result.Classification)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("sample_size", len(data)))

	return TrainingAcknowledgment(result)
}

func TrainingAcknowledgment(result domain.DetectionResult) string {
	return fmt.Sprintf("Model updated with new data labeled '%s' (confidence: %.4f).",
		result.Classification, result.Confidence)
}
