// Package detection holds the deepfake detection backends. Only a random
// placeholder exists today; a real model plugs in by implementing Engine.
package detection

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/config"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
)

// Threshold is the confidence above which media is classified as a deepfake.
const Threshold = 0.5

type Engine interface {
	Name() string
	Detect(ctx context.Context, data []byte, kind domain.MediaKind) (domain.DetectionResult, error)
}

// Classify maps a confidence to a label. The threshold itself is Authentic.
func Classify(confidence float64) domain.Classification {
	if confidence > Threshold {
		return domain.DeepfakeDetected
	}
	return domain.Authentic
}

// RandomStubEngine draws confidence uniformly from [0,1) and ignores the
// payload.
type RandomStubEngine struct {
	mu     sync.Mutex
	source *rand.Rand
}

// NewRandomStubEngine returns an engine seeded with seed, or one backed by
// the shared math/rand source when seed is 0.
func NewRandomStubEngine(seed int64) *RandomStubEngine {
	e := &RandomStubEngine{}
	if seed != 0 {
		e.source = rand.New(rand.NewSource(seed))
	}
	return e
}

func (e *RandomStubEngine) Name() string {
	return "random"
}

func (e *RandomStubEngine) Detect(ctx context.Context, data []byte, kind domain.MediaKind) (domain.DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.DetectionResult{}, err
	}

	confidence := e.next()
	return domain.DetectionResult{
		Classification: Classify(confidence),
		Confidence:     confidence,
	}, nil
}

func (e *RandomStubEngine) next() float64 {
	if e.source == nil {
		return rand.Float64()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source.Float64()
}

func New(cfg config.DetectionConfig) (Engine, error) {
	switch cfg.Engine {
	case "", "random":
		return NewRandomStubEngine(cfg.Seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEngine, cfg.Engine)
	}
}
