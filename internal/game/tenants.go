package game

import "immotycoon/internal/config"

const candidatesPerBatch = 3

var tenantCategories = []TenantCategory{
	TenantStudent,
	TenantFamily,
	TenantStartup,
	TenantSenior,
	TenantProfessional,
}

var tenantNames = map[TenantCategory][]string{
	TenantStudent:      {"Lena the student", "Max the student", "Priya the student", "Tom the student"},
	TenantFamily:       {"The Bauer family", "The Okafor family", "The Nguyen family", "The Schmidt family"},
	TenantStartup:      {"Pixelwerk GmbH", "Brewlab Collective", "Loopstack Labs", "Kartoffel.io"},
	TenantSenior:       {"Mrs. Krause", "Mr. Albrecht", "Mrs. Ferreira", "Mr. Tanaka"},
	TenantProfessional: {"Dr. Weber", "Architect Sorensen", "Consultant Marchetti", "Engineer Osei"},
}

func (s *Service) tenantBand(cat TenantCategory) config.TenantBand {
	if band, ok := s.bal.Tenants[string(cat)]; ok {
		return band
	}
	return config.DefaultBalance().Tenants[string(cat)]
}

// generateCandidates draws a fresh batch of tenant offers for a property:
// a shuffled pick of three categories, each sampled from its band.
// Candidate ids only need to be unique within the batch.
func (s *Service) generateCandidates(p Property) []Tenant {
	cats := make([]TenantCategory, len(tenantCategories))
	copy(cats, tenantCategories)
	s.rand.Shuffle(len(cats), func(i, j int) {
		cats[i], cats[j] = cats[j], cats[i]
	})

	out := make([]Tenant, 0, candidatesPerBatch)
	for i, cat := range cats[:candidatesPerBatch] {
		band := s.tenantBand(cat)
		names := tenantNames[cat]
		out = append(out, Tenant{
			ID:           p.ID*100 + i,
			Name:         names[s.rand.Intn(len(names))],
			Category:     cat,
			RentOfferPct: s.randBetween(band.RentMinPct, band.RentMaxPct),
			Risk:         s.randBetween(band.RiskMin, band.RiskMax),
			MinCondition: band.MinCondition,
		})
	}
	return out
}

func (s *Service) randBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rand.Intn(hi-lo+1)
}
