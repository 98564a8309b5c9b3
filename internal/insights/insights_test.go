package insights

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
)

var twoDecimals = regexp.MustCompile(`confidence of \d\.\d{2}(\D|$)`)

func TestExplain(t *testing.T) {
	deepfake := Explain(domain.DetectionResult{Classification: domain.DeepfakeDetected, Confidence: 0.876543})
	assert.Contains(t, deepfake, "deepfake artifacts with a confidence of 0.88.")
	assert.Contains(t, deepfake, "Consider verifying with additional tools.")

	authentic := Explain(domain.DetectionResult{Classification: domain.Authentic, Confidence: 0.1})
	assert.Equal(t, "Simulated analysis indicates the media is authentic with a confidence of 0.10.", authentic)

	for _, c := range []float64{0, 0.005, 0.5, 0.999} {
		for _, label := range []domain.Classification{domain.DeepfakeDetected, domain.Authentic} {
			out := Explain(domain.DetectionResult{Classification: label, Confidence: c})
			assert.Regexp(t, twoDecimals, out)
		}
	}
}

func TestVerifyClaimsCollapsesDuplicates(t *testing.T) {
	got := VerifyClaims([]string{"A", "B", "A"})

	require.Len(t, got, 2)
	assert.Equal(t, StatusUnverified, got["A"].Status)
	assert.Equal(t, StatusUnverified, got["B"].Status)
}

func TestVerifyClaimsSkipsBlank(t *testing.T) {
	got := VerifyClaims([]string{"  ", "", " C "})

	require.Len(t, got, 1)
	assert.Contains(t, got, "C")
}

func TestAdvise(t *testing.T) {
	assert.Equal(t, AdvisoryHigh, Advise(domain.DetectionResult{Classification: domain.DeepfakeDetected, Confidence: 0.95}))
	assert.Equal(t, AdvisoryMedium, Advise(domain.DetectionResult{Classification: domain.DeepfakeDetected, Confidence: 0.6}))
	assert.Equal(t, AdvisoryMedium, Advise(domain.DetectionResult{Classification: domain.DeepfakeDetected, Confidence: 0.8}))
	assert.Equal(t, AdvisoryMedium, Advise(domain.DetectionResult{Classification: domain.DeepfakeDetected, Confidence: math.NaN()}))

	for _, c := range []float64{0, 0.3, 0.99} {
		assert.Equal(t, AdvisoryNone, Advise(domain.DetectionResult{Classification: domain.Authentic, Confidence: c}))
	}
}

func TestParseConfidence(t *testing.T) {
	c, err := ParseConfidence(0.7)
	require.NoError(t, err)
	assert.Equal(t, 0.7, c)

	c, err = ParseConfidence(" 0.25 ")
	require.NoError(t, err)
	assert.Equal(t, 0.25, c)

	for _, bad := range []any{"high", 1.5, -0.1, true, nil} {
		_, err := ParseConfidence(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidConfidence, "input %v", bad)
	}
}

func TestRecordTrainingEvent(t *testing.T) {
	rec := NewTrainingRecorder(zap.NewNop())

	msg := rec.RecordTrainingEvent([]byte("sample"), domain.DetectionResult{
		Classification: domain.Authentic,
		Confidence:     0.125,
	})

	assert.Equal(t, "Model updated with new data labeled 'Authentic Media' (confidence: 0.1250).", msg)
}
