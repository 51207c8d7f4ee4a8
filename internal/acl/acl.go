package acl

import (
	"errors"
	"sync"

	"github.com/feral-file/nft-registry/internal/domain"
)

// AdminType distinguishes admin capabilities.
type AdminType string

const (
	// AdminSystem can do everything, including adding and removing admins.
	AdminSystem AdminType = "system"
	// AdminFunctional can only perform functional updates such as changing
	// collection details.
	AdminFunctional AdminType = "functional"
)

// Admin pairs a principal with its admin type.
type Admin struct {
	Principal domain.Identity `json:"principal"`
	Type      AdminType       `json:"type"`
}

var (
	ErrNotSystemAdmin  = errors.New("unauthorized: only system admins can manage admins")
	ErrNotAdmin        = errors.New("unauthorized: only admins can manage the whitelist")
	ErrLastSystemAdmin = errors.New("cannot remove the last system admin")
	ErrInvalidType     = errors.New("invalid admin type")
)

// List owns the admin and whitelist sets. The registry core consumes it only
// through the IsAdmin and IsWhitelisted predicates.
type List struct {
	mu        sync.RWMutex
	admins    map[domain.Identity]AdminType
	whitelist map[domain.Identity]struct{}
}

// New creates an empty access list.
func New() *List {
	return &List{
		admins:    make(map[domain.Identity]AdminType),
		whitelist: make(map[domain.Identity]struct{}),
	}
}

// Seed installs the given principals as system admins and whitelists them,
// plus any extra whitelist entries. Used on first start only.
func (l *List) Seed(admins []domain.Identity, whitelist []domain.Identity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range admins {
		l.admins[id] = AdminSystem
		l.whitelist[id] = struct{}{}
	}
	for _, id := range whitelist {
		l.whitelist[id] = struct{}{}
	}
}

// IsAdmin reports whether the identity is an admin of either type.
func (l *List) IsAdmin(id domain.Identity) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.admins[id]
	return ok
}

// IsSystemAdmin reports whether the identity is a system admin.
func (l *List) IsSystemAdmin(id domain.Identity) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.admins[id] == AdminSystem
}

// IsAdminType reports whether the identity holds exactly the given type.
func (l *List) IsAdminType(id domain.Identity, typ AdminType) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	got, ok := l.admins[id]
	return ok && got == typ
}

// IsWhitelisted reports whether the identity is on the whitelist.
func (l *List) IsWhitelisted(id domain.Identity) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.whitelist[id]
	return ok
}

// AddAdmin installs user as an admin of the given type and whitelists it.
// Only system admins may add admins.
func (l *List) AddAdmin(caller, user domain.Identity, typ AdminType) error {
	if typ != AdminSystem && typ != AdminFunctional {
		return ErrInvalidType
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.admins[caller] != AdminSystem {
		return ErrNotSystemAdmin
	}

	l.admins[user] = typ
	l.whitelist[user] = struct{}{}
	return nil
}

// RemoveAdmin removes user from the admin set. Only system admins may remove
// admins, and the last system admin cannot remove itself.
func (l *List) RemoveAdmin(caller, user domain.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.admins[caller] != AdminSystem {
		return ErrNotSystemAdmin
	}
	if user == caller && l.countSystemAdminsLocked() <= 1 {
		return ErrLastSystemAdmin
	}

	delete(l.admins, user)
	return nil
}

// Admins returns all admins.
func (l *List) Admins() []Admin {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Admin, 0, len(l.admins))
	for id, typ := range l.admins {
		out = append(out, Admin{Principal: id, Type: typ})
	}
	return out
}

// AddToWhitelist adds user to the whitelist. Any admin may do this.
func (l *List) AddToWhitelist(caller, user domain.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.admins[caller]; !ok {
		return ErrNotAdmin
	}

	l.whitelist[user] = struct{}{}
	return nil
}

// RemoveFromWhitelist removes user from the whitelist. Any admin may do this.
func (l *List) RemoveFromWhitelist(caller, user domain.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.admins[caller]; !ok {
		return ErrNotAdmin
	}

	delete(l.whitelist, user)
	return nil
}

// Export returns a copy of both sets for snapshotting.
func (l *List) Export() (map[domain.Identity]AdminType, []domain.Identity) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	admins := make(map[domain.Identity]AdminType, len(l.admins))
	for id, typ := range l.admins {
		admins[id] = typ
	}
	whitelist := make([]domain.Identity, 0, len(l.whitelist))
	for id := range l.whitelist {
		whitelist = append(whitelist, id)
	}
	return admins, whitelist
}

// Restore replaces both sets wholesale from a snapshot.
func (l *List) Restore(admins map[domain.Identity]AdminType, whitelist []domain.Identity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.admins = make(map[domain.Identity]AdminType, len(admins))
	for id, typ := range admins {
		l.admins[id] = typ
	}
	l.whitelist = make(map[domain.Identity]struct{}, len(whitelist))
	for _, id := range whitelist {
		l.whitelist[id] = struct{}{}
	}
}

func (l *List) countSystemAdminsLocked() int {
	n := 0
	for _, typ := range l.admins {
		if typ == AdminSystem {
			n++
		}
	}
	return n
}
