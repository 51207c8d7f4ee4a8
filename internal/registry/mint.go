package registry

import (
	"context"
	"fmt"

	"github.com/feral-file/nft-registry/internal/assets"
	"github.com/feral-file/nft-registry/internal/domain"
)

// Mint issues one token to a whitelisted caller, deriving its metadata from
// a not-yet-minted vector asset. Asset selection is pseudo-random, seeded by
// the current timestamp modulo the number of eligible assets. That is a
// placeholder fairness mechanism, not cryptographically secure; substitute a
// seeded PRNG or round-robin policy deliberately, not silently.
func (r *Registry) Mint(ctx context.Context, caller domain.Identity) (*MintReceipt, error) {
	if !r.acl.IsWhitelisted(caller) {
		return nil, ErrNotWhitelisted
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasSupplyHeadroom(1) {
		return nil, ErrSupplyExhausted
	}

	key, err := r.pickUnmintedAsset(ctx)
	if err != nil {
		return nil, err
	}
	r.mintedAssets[key] = true

	now := r.clock.NowNanos()
	metadata := r.assetMetadata(key)
	id := r.ledger.Issue(caller, metadata, now)
	r.log.Append(domain.TxKindMint, id, r.identity, caller, nil, domain.OpMintNFT, now)

	return &MintReceipt{TokenID: id, Quantity: 1, Metadata: metadata}, nil
}

// MintBundle issues quantity tokens to the caller at the best available
// bundle price. All preconditions (pricing enabled, qualifying schedule,
// price, payment hook, supply headroom) are evaluated before any state
// mutation. A single transaction record referencing the first minted id is
// appended, with the bundle quantity in its descriptor.
func (r *Registry) MintBundle(ctx context.Context, caller domain.Identity, quantity uint64) (*MintReceipt, error) {
	if quantity == 0 {
		return nil, ErrZeroQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.details.PricingEnabled {
		return nil, ErrMintingDisabled
	}

	now := r.clock.NowNanos()
	active := ActiveSchedules(r.details.Schedules, now, r.acl.IsWhitelisted(caller))
	if len(active) == 0 {
		return nil, ErrNoActiveSchedule
	}

	price := BestPrice(quantity, active)
	if price == nil {
		return nil, ErrNoPriceForQty
	}

	if !r.hasSupplyHeadroom(quantity) {
		return nil, ErrSupplyExhausted
	}

	if err := r.verifier.VerifyPayment(caller, quantity, *price); err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	keys, err := r.pickUnmintedAssets(ctx, quantity)
	if err != nil {
		return nil, err
	}

	var (
		firstID  domain.TokenID
		metadata domain.Metadata
	)
	for i, key := range keys {
		r.mintedAssets[key] = true
		md := r.assetMetadata(key)
		id := r.ledger.Issue(caller, md, now)
		if i == 0 {
			firstID = id
			metadata = md
		}
	}
	operation := fmt.Sprintf("mint_bundle:%d", quantity)
	r.log.Append(domain.TxKindMint, firstID, r.identity, caller, nil, operation, now)

	return &MintReceipt{TokenID: firstID, Quantity: quantity, Price: *price, Metadata: metadata}, nil
}

// ActiveSchedulesFor returns the schedules currently open to the identity.
func (r *Registry) ActiveSchedulesFor(id domain.Identity) []domain.MintSchedule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return ActiveSchedules(r.details.Schedules, r.clock.NowNanos(), r.acl.IsWhitelisted(id))
}

// AvailableBundles flattens the tiers of the schedules currently open to the
// identity into purchasable offers.
func (r *Registry) AvailableBundles(id domain.Identity) []BundleOffer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var offers []BundleOffer
	for _, s := range ActiveSchedules(r.details.Schedules, r.clock.NowNanos(), r.acl.IsWhitelisted(id)) {
		for _, tier := range s.Tiers {
			offers = append(offers, BundleOffer{Schedule: s.Name, Quantity: tier.Quantity, Price: tier.Price})
		}
	}
	return offers
}

// UpsertSchedule inserts or updates a mint schedule by name. Admin only.
// A time range with end before start is rejected before commit, so such a
// schedule can never exist.
func (r *Registry) UpsertSchedule(caller domain.Identity, update ScheduleUpdate) error {
	if !r.acl.IsAdmin(caller) {
		return ErrAdminOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, s := range r.details.Schedules {
		if s.Name == update.Name {
			idx = i
			break
		}
	}

	// Start from the existing schedule on update, safe defaults on insert.
	schedule := domain.MintSchedule{Name: update.Name}
	if idx >= 0 {
		schedule = r.details.Schedules[idx]
	}

	schedule.Tiers = append([]domain.BundleTier(nil), update.Tiers...)
	if update.StartTime != nil {
		schedule.StartTime = update.StartTime
	}
	if update.EndTime != nil {
		schedule.EndTime = update.EndTime
	}
	if update.Active != nil {
		schedule.Active = *update.Active
	}
	if update.WhitelistOnly != nil {
		schedule.WhitelistOnly = *update.WhitelistOnly
	}

	if schedule.StartTime != nil && schedule.EndTime != nil && *schedule.EndTime <= *schedule.StartTime {
		return ErrInvalidTimeRange
	}

	if idx >= 0 {
		r.details.Schedules[idx] = schedule
	} else {
		r.details.Schedules = append(r.details.Schedules, schedule)
	}
	return nil
}

// RemoveSchedule deletes a mint schedule by name. Admin only.
func (r *Registry) RemoveSchedule(caller domain.Identity, name string) error {
	if !r.acl.IsAdmin(caller) {
		return ErrAdminOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.details.Schedules {
		if s.Name == name {
			r.details.Schedules = append(r.details.Schedules[:i], r.details.Schedules[i+1:]...)
			return nil
		}
	}
	return ErrScheduleNotFound
}

func (r *Registry) hasSupplyHeadroom(quantity uint64) bool {
	if r.details.MaxSupply == nil {
		return true
	}
	return r.ledger.TotalSupply()+quantity <= *r.details.MaxSupply
}

// pickUnmintedAsset selects one eligible asset key; see Mint for the
// fairness caveat.
func (r *Registry) pickUnmintedAsset(ctx context.Context) (string, error) {
	eligible, err := r.unmintedAssetKeys(ctx)
	if err != nil {
		return "", err
	}
	if len(eligible) == 0 {
		return "", ErrNoAssetsAvailable
	}
	idx := int(r.clock.NowNanos() % uint64(len(eligible)))
	return eligible[idx], nil
}

// pickUnmintedAssets selects quantity distinct eligible keys, starting from
// the pseudo-random index and wrapping around.
func (r *Registry) pickUnmintedAssets(ctx context.Context, quantity uint64) ([]string, error) {
	eligible, err := r.unmintedAssetKeys(ctx)
	if err != nil {
		return nil, err
	}
	if uint64(len(eligible)) < quantity {
		return nil, ErrNoAssetsAvailable
	}

	start := int(r.clock.NowNanos() % uint64(len(eligible)))
	keys := make([]string, 0, quantity)
	for i := 0; uint64(len(keys)) < quantity; i++ {
		keys = append(keys, eligible[(start+i)%len(eligible)])
	}
	return keys, nil
}

// unmintedAssetKeys lists vector assets not yet bound to a token, in key
// order for deterministic indexing.
func (r *Registry) unmintedAssetKeys(ctx context.Context) ([]string, error) {
	metas, err := r.assets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	var keys []string
	for _, meta := range metas {
		if meta.ContentType != assets.SVGContentType {
			continue
		}
		if r.mintedAssets[meta.Key] {
			continue
		}
		keys = append(keys, meta.Key)
	}
	return keys, nil
}

// assetMetadata derives token metadata from an asset key and the collection
// details. The token name embeds the id the next Issue call will assign.
func (r *Registry) assetMetadata(key string) domain.Metadata {
	url := fmt.Sprintf("%s/asset/%s", r.details.BaseURL, key)
	contentType := assets.SVGContentType
	return domain.Metadata{
		Name:        fmt.Sprintf("%s #%d", r.details.Name, r.ledger.nextID),
		Description: r.details.Description,
		ImageURL:    url,
		ContentURL:  &url,
		ContentType: &contentType,
	}
}
