package registry

import "errors"

// Administrative errors. Mint, schedule, collection and asset management
// operations report failures as plain errors rather than the structured
// transfer taxonomy.
var (
	ErrNotWhitelisted    = errors.New("unauthorized: user is not on the whitelist")
	ErrMintingDisabled   = errors.New("minting is disabled: pricing is not enabled for this collection")
	ErrNoActiveSchedule  = errors.New("no active mint schedule for caller")
	ErrNoPriceForQty     = errors.New("no price available for requested quantity")
	ErrSupplyExhausted   = errors.New("max supply reached: no more tokens can be minted")
	ErrNoAssetsAvailable = errors.New("all assets have already been minted")
	ErrMaxSupplyLocked   = errors.New("cannot update max supply after minting has started")
	ErrAdminOnly         = errors.New("unauthorized: admin access required")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrInvalidTimeRange  = errors.New("schedule end time must be after start time")
	ErrZeroQuantity      = errors.New("quantity must be positive")
)
