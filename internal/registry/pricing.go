package registry

import "github.com/feral-file/nft-registry/internal/domain"

// ActiveSchedules returns the schedules that qualify at the given instant for
// a caller with the given whitelist standing: the schedule must be active,
// its time window must contain now (nil bounds are unbounded on that side),
// and whitelist-only schedules require a whitelisted caller.
func ActiveSchedules(schedules []domain.MintSchedule, now domain.Timestamp, whitelisted bool) []domain.MintSchedule {
	var out []domain.MintSchedule
	for _, s := range schedules {
		if !s.Active {
			continue
		}
		if !s.Contains(now) {
			continue
		}
		if s.WhitelistOnly && !whitelisted {
			continue
		}
		out = append(out, s)
	}
	return out
}

// BestPrice computes the minimum total price for the requested quantity
// across the qualifying schedules. Within one schedule, the eligible tier is
// the one with the largest Quantity not exceeding the request; tiers larger
// than the request are ineligible. The total is ceiling-division bundling:
// ceil(quantity / tier.Quantity) * tier.Price, so a request not evenly
// divisible by the tier size pays for the next full bundle. Returns nil when
// no schedule has an eligible tier.
func BestPrice(quantity uint64, schedules []domain.MintSchedule) *uint64 {
	if quantity == 0 {
		return nil
	}

	var best *uint64
	for _, s := range schedules {
		tier, ok := eligibleTier(s, quantity)
		if !ok {
			continue
		}
		bundles := (quantity + tier.Quantity - 1) / tier.Quantity
		total := bundles * tier.Price
		if best == nil || total < *best {
			best = &total
		}
	}
	return best
}

func eligibleTier(s domain.MintSchedule, quantity uint64) (domain.BundleTier, bool) {
	var (
		found bool
		tier  domain.BundleTier
	)
	for _, t := range s.Tiers {
		if t.Quantity == 0 || t.Quantity > quantity {
			continue
		}
		if !found || t.Quantity > tier.Quantity {
			found = true
			tier = t
		}
	}
	return tier, found
}
