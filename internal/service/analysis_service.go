package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/detection"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/insights"
)

const previewUnavailableNote = "Could not extract preview frame."

type AnalysisService interface {
	// Analyze runs detection and the follow-up stages on already ingested
	// media. claims are fact-checked alongside any the engine produced.
	Analyze(ctx context.Context, media *domain.UploadedMedia, claims []string) (*domain.Report, error)
}

type analysisService struct {
	engine   detection.Engine
	training *insights.TrainingRecorder
	log      *zap.Logger
	now      func() time.Time
}

func NewAnalysisService(engine detection.Engine, log *zap.Logger) AnalysisService {
	return &analysisService{
		engine:   engine,
		training: insights.NewTrainingRecorder(log),
		log:      log,
		now:      time.Now,
	}
}

func (s *analysisService) Analyze(ctx context.Context, media *domain.UploadedMedia, claims []string) (*domain.Report, error) {
	result, err := s.engine.Detect(ctx, media.Data, media.Kind)
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}
	if err := insights.CheckConfidence(result.Confidence); err != nil {
		return nil, fmt.Errorf("engine %s: %w", s.engine.Name(), err)
	}

	s.log.Info("Media analyzed",
		zap.String("id", media.ID),
		zap.String("engine", s.engine.Name()),
		zap.String("classification", string(result.Classification)),
		zap.Float64("confidence", result.Confidence))

	report := &domain.Report{
		Media:      media,
		Result:     result,
		AnalyzedAt: s.now(),
	}
	if media.Kind == domain.KindVideo && !media.HasPreview() {
		report.PreviewNote = previewUnavailableNote
	}

	if result.IsDeepfake() {
		report.Insights = insights.Explain(result)

		all := append(append([]string{}, result.Claims...), claims...)
		if verified := insights.VerifyClaims(all); len(verified) > 0 {
			report.FactCheck = verified
		}
	} else {
		report.Verdict = insights.NoDeepfakeMessage
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Advisory = insights.Advise(result)
	report.Training = s.training.RecordTrainingEvent(media.Data, result)

	return report, nil
}
