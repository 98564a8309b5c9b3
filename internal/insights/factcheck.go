package insights

import (
	"strings"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/domain"
)

const StatusUnverified = "Unverified (simulation)"

// VerifyClaims marks every claim unverified. No lookups are performed.
func VerifyClaims(claims []string) domain.ClaimVerification {
	results := make(domain.ClaimVerification, len(claims))
	for _, claim := range claims {
		claim = strings.TrimSpace(claim)
		if claim == "" {
			continue
		}
		results[claim] = domain.ClaimStatus{Status: StatusUnverified}
	}
	return results
}
