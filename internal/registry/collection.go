package registry

import "github.com/feral-file/nft-registry/internal/domain"

// CollectionDetails returns a copy of the collection configuration.
func (r *Registry) CollectionDetails() domain.CollectionDetails {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyDetails()
}

// UpdateCollectionDetails applies the provided fields. Admin only. MaxSupply
// is locked permanently once any token has been minted, regardless of the
// new value.
func (r *Registry) UpdateCollectionDetails(caller domain.Identity, update CollectionUpdate) error {
	if !r.acl.IsAdmin(caller) {
		return ErrAdminOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if update.MaxSupply != nil && r.ledger.TotalSupply() > 0 {
		return ErrMaxSupplyLocked
	}

	if update.Name != nil {
		r.details.Name = *update.Name
	}
	if update.Symbol != nil {
		r.details.Symbol = *update.Symbol
	}
	if update.Description != nil {
		r.details.Description = *update.Description
	}
	if update.MaxSupply != nil {
		v := *update.MaxSupply
		r.details.MaxSupply = &v
	}
	if update.BaseURL != nil {
		r.details.BaseURL = *update.BaseURL
	}
	if update.PricingEnabled != nil {
		r.details.PricingEnabled = *update.PricingEnabled
	}
	return nil
}

// UpdateBaseURL updates only the content base URL. Admin only.
func (r *Registry) UpdateBaseURL(caller domain.Identity, baseURL string) error {
	if !r.acl.IsAdmin(caller) {
		return ErrAdminOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.details.BaseURL = baseURL
	return nil
}

// CollectionMetadata returns the icrc7-style key/value metadata pairs.
func (r *Registry) CollectionMetadata() []domain.MetadataEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := []domain.MetadataEntry{
		{Key: "icrc7:name", Value: domain.TextProperty(r.details.Name)},
		{Key: "icrc7:symbol", Value: domain.TextProperty(r.details.Symbol)},
		{Key: "icrc7:description", Value: domain.TextProperty(r.details.Description)},
		{Key: "icrc7:total_supply", Value: domain.NatProperty(r.ledger.TotalSupply())},
		{Key: "icrc7:max_query_batch_size", Value: domain.NatProperty(domain.MaxQueryBatchSize)},
		{Key: "icrc7:max_update_batch_size", Value: domain.NatProperty(domain.MaxUpdateBatchSize)},
		{Key: "icrc7:default_take_value", Value: domain.NatProperty(domain.DefaultTakeValue)},
		{Key: "icrc7:max_take_value", Value: domain.NatProperty(domain.MaxTakeValue)},
	}
	if r.details.MaxSupply != nil {
		entries = append(entries, domain.MetadataEntry{Key: "max_supply", Value: domain.NatProperty(*r.details.MaxSupply)})
	}
	return entries
}

func (r *Registry) copyDetails() domain.CollectionDetails {
	details := r.details
	if r.details.MaxSupply != nil {
		v := *r.details.MaxSupply
		details.MaxSupply = &v
	}
	details.Schedules = append([]domain.MintSchedule(nil), r.details.Schedules...)
	return details
}
