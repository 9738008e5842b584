// Package policy holds the role-based access rules as pure predicates over
// (actor, action, object). Handlers resolve the actor once per request and
// pass it down; nothing in here reads ambient state.
//
// Object-level precedence is fixed and must stay in this order: superuser
// short-circuits to allow, then the ownership field is matched, then deny.
package policy

import "thoonsheet-backend/internal/domain"

// Actor is the authenticated caller, resolved from the bearer token.
type Actor struct {
	ID          int32
	Role        domain.Role
	IsStaff     bool
	IsSuperuser bool
}

// ActorFor builds an Actor from a loaded user record.
func ActorFor(u *domain.User) Actor {
	return Actor{ID: u.ID, Role: u.Role, IsStaff: u.IsStaff, IsSuperuser: u.IsSuperuser}
}

// Owned is any resource carrying an ownership field (owner, submitted_by,
// auditor, or the user id itself).
type Owned interface {
	OwnedBy(userID int32) bool
}

// Rule is a request-level predicate.
type Rule func(a Actor) bool

func IsSuperuser(a Actor) bool { return a.IsSuperuser }

func IsOwner(a Actor) bool { return a.IsSuperuser || a.Role == domain.RoleOwner }

func IsAuditor(a Actor) bool { return a.Role == domain.RoleAuditor }

// Any composes rules with logical OR.
func Any(rules ...Rule) Rule {
	return func(a Actor) bool {
		for _, r := range rules {
			if r(a) {
				return true
			}
		}
		return false
	}
}

// All composes rules with logical AND.
func All(rules ...Rule) Rule {
	return func(a Actor) bool {
		for _, r := range rules {
			if !r(a) {
				return false
			}
		}
		return true
	}
}

// anySubmitter covers both roles that file records against the books.
var anySubmitter = Any(IsOwner, IsAuditor)

// entryAuthor limits audit-entry authorship to auditors and superusers.
var entryAuthor = Any(IsSuperuser, IsAuditor)

// CanAccessObject is the shared object-level check: superuser first, then
// the ownership field, then deny.
func CanAccessObject(a Actor, obj Owned) bool {
	if a.IsSuperuser {
		return true
	}
	return obj.OwnedBy(a.ID)
}

// ---- Groups and payment accounts ----

// Owners create and mutate their own groups/accounts; auditors get
// read-only access so they can reference them when submitting.

func CanCreateOwnedResource(a Actor) bool {
	return IsOwner(a)
}

func CanReadOwnedResources(a Actor) bool {
	return anySubmitter(a)
}

func CanWriteOwnedResource(a Actor, obj Owned) bool {
	if !IsOwner(a) {
		return false
	}
	return CanAccessObject(a, obj)
}

// ---- Transactions ----

func CanCreateTransaction(a Actor) bool {
	return anySubmitter(a)
}

// CanViewTransaction scopes auditors to their own submissions; owners see
// everything.
func CanViewTransaction(a Actor, tx *domain.Transaction) bool {
	if a.IsSuperuser || a.Role == domain.RoleOwner {
		return true
	}
	if a.Role == domain.RoleAuditor {
		return tx.OwnedBy(a.ID)
	}
	return false
}

// CanUpdateTransaction allows owners full write authority. Auditors may
// touch only their own transactions; the rejected-only precondition is a
// workflow rule checked by the service, not a permission.
func CanUpdateTransaction(a Actor, tx *domain.Transaction) bool {
	if a.IsSuperuser || a.Role == domain.RoleOwner {
		return true
	}
	if a.Role == domain.RoleAuditor {
		return tx.OwnedBy(a.ID)
	}
	return false
}

// CanReviewTransactions gates approve/reject and the owner-only listings.
func CanReviewTransactions(a Actor) bool {
	return IsOwner(a)
}

// CanDeleteTransaction: auditors never delete, whatever they submitted.
func CanDeleteTransaction(a Actor) bool {
	return IsOwner(a)
}

// CanResubmitTransaction: only the original submitter reopens a rejected
// transaction.
func CanResubmitTransaction(a Actor, tx *domain.Transaction) bool {
	if a.IsSuperuser {
		return true
	}
	return a.Role == domain.RoleAuditor && tx.OwnedBy(a.ID)
}

func CanViewSummary(a Actor) bool {
	return IsOwner(a)
}

// ---- Audit entries ----

// Audit entries are authored by their auditor, so creation is limited
// to auditor accounts (and superusers).
func CanCreateAuditEntry(a Actor) bool {
	return entryAuthor(a)
}

func CanViewAuditEntry(a Actor, e *domain.AuditEntry) bool {
	if a.IsSuperuser || a.Role == domain.RoleOwner {
		return true
	}
	if a.Role == domain.RoleAuditor {
		return e.OwnedBy(a.ID)
	}
	return false
}

func CanUpdateAuditEntry(a Actor, e *domain.AuditEntry) bool {
	return CanViewAuditEntry(a, e)
}

func CanDeleteAuditEntry(a Actor) bool {
	return IsOwner(a)
}

// ---- Users ----

func CanListUsers(a Actor) bool {
	return anySubmitter(a)
}

// CanViewUser: owners manage auditor accounts and may not browse other
// owners or superusers; auditors see only themselves.
func CanViewUser(a Actor, target *domain.User) bool {
	if a.IsSuperuser {
		return true
	}
	if a.Role == domain.RoleOwner {
		return target.ID == a.ID || (target.Role == domain.RoleAuditor && !target.IsSuperuser)
	}
	return target.OwnedBy(a.ID)
}

func CanCreateUser(a Actor) bool {
	return IsOwner(a)
}

// CanUpdateUser: superuser any, owner any non-superuser, auditor self only.
// Which fields they may change is validated separately.
func CanUpdateUser(a Actor, target *domain.User) bool {
	if a.IsSuperuser {
		return true
	}
	if a.Role == domain.RoleOwner {
		return !target.IsSuperuser
	}
	return target.OwnedBy(a.ID)
}

// CanDeleteUser: account removal is reserved for superusers.
func CanDeleteUser(a Actor) bool {
	return a.IsSuperuser
}

// CanSetUserPassword gates the owner-initiated reset. Owners reset
// auditor passwords; other owners are outside their reach.
func CanSetUserPassword(a Actor, target *domain.User) bool {
	if a.IsSuperuser {
		return true
	}
	return a.Role == domain.RoleOwner && target.Role == domain.RoleAuditor && !target.IsSuperuser
}
