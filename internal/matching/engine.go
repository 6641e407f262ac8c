// Package matching selects the logistics partners able to carry a quote.
package matching

import (
	"sort"
	"strings"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// Match returns the active partners whose capabilities cover the quote,
// ordered by rating (highest first). Partners with equal ratings keep their input order.
func Match(q *model.Quote, partners []model.PartnerProfile) []model.PartnerProfile {
	out := make([]model.PartnerProfile, 0, len(partners))
	for _, p := range partners {
		if Eligible(q, &p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

// Eligible reports whether a single partner can carry the quote.
func Eligible(q *model.Quote, p *model.PartnerProfile) bool {
	if !p.Active {
		return false
	}
	if q.HazardClass != 0 && !containsInt(p.HazardClasses, q.HazardClass) {
		return false
	}
	if !servesRegion(p.ServiceRegions, q.PickupRegion) {
		return false
	}
	if p.MaxCapacityTons < q.QuantityTons() {
		return false
	}
	if q.TemperatureControlled && !p.TemperatureControlled {
		return false
	}
	return true
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func servesRegion(regions []string, region string) bool {
	region = strings.TrimSpace(region)
	for _, r := range regions {
		r = strings.TrimSpace(r)
		if strings.EqualFold(r, model.RegionAll) || strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}
