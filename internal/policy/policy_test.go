package policy_test

import (
	"testing"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/policy"

	"github.com/stretchr/testify/assert"
)

var (
	owner     = policy.Actor{ID: 1, Role: domain.RoleOwner}
	auditor   = policy.Actor{ID: 5, Role: domain.RoleAuditor}
	superuser = policy.Actor{ID: 9, Role: domain.RoleOwner, IsSuperuser: true}
)

func TestCanAccessObject(t *testing.T) {
	group := &domain.Group{ID: 1, OwnerID: 1}

	assert.True(t, policy.CanAccessObject(owner, group))
	assert.True(t, policy.CanAccessObject(superuser, group))
	assert.False(t, policy.CanAccessObject(policy.Actor{ID: 2, Role: domain.RoleOwner}, group))
}

func TestTransactionRules(t *testing.T) {
	own := &domain.Transaction{ID: 10, SubmittedBy: 5}
	foreign := &domain.Transaction{ID: 11, SubmittedBy: 7}

	t.Run("View", func(t *testing.T) {
		assert.True(t, policy.CanViewTransaction(owner, foreign))
		assert.True(t, policy.CanViewTransaction(auditor, own))
		assert.False(t, policy.CanViewTransaction(auditor, foreign))
	})

	t.Run("Review", func(t *testing.T) {
		assert.True(t, policy.CanReviewTransactions(owner))
		assert.True(t, policy.CanReviewTransactions(superuser))
		assert.False(t, policy.CanReviewTransactions(auditor))
	})

	t.Run("Delete", func(t *testing.T) {
		assert.True(t, policy.CanDeleteTransaction(owner))
		assert.False(t, policy.CanDeleteTransaction(auditor))
	})

	t.Run("Resubmit", func(t *testing.T) {
		assert.True(t, policy.CanResubmitTransaction(auditor, own))
		assert.False(t, policy.CanResubmitTransaction(auditor, foreign))
		assert.False(t, policy.CanResubmitTransaction(owner, foreign))
		assert.True(t, policy.CanResubmitTransaction(superuser, foreign))
	})
}

func TestUserRules(t *testing.T) {
	auditorUser := &domain.User{ID: 5, Role: domain.RoleAuditor}
	otherOwner := &domain.User{ID: 2, Role: domain.RoleOwner}
	superUser := &domain.User{ID: 9, Role: domain.RoleOwner, IsSuperuser: true}

	t.Run("View", func(t *testing.T) {
		assert.True(t, policy.CanViewUser(owner, auditorUser))
		assert.False(t, policy.CanViewUser(owner, otherOwner))
		assert.True(t, policy.CanViewUser(owner, &domain.User{ID: 1, Role: domain.RoleOwner}))
		assert.True(t, policy.CanViewUser(auditor, auditorUser))
		assert.False(t, policy.CanViewUser(auditor, otherOwner))
		assert.True(t, policy.CanViewUser(superuser, otherOwner))
	})

	t.Run("Update", func(t *testing.T) {
		assert.True(t, policy.CanUpdateUser(owner, auditorUser))
		assert.True(t, policy.CanUpdateUser(owner, otherOwner))
		assert.False(t, policy.CanUpdateUser(owner, superUser))
		assert.True(t, policy.CanUpdateUser(auditor, auditorUser))
		assert.False(t, policy.CanUpdateUser(auditor, otherOwner))
	})

	t.Run("Delete", func(t *testing.T) {
		assert.False(t, policy.CanDeleteUser(owner))
		assert.False(t, policy.CanDeleteUser(auditor))
		assert.True(t, policy.CanDeleteUser(superuser))
	})

	t.Run("SetPassword", func(t *testing.T) {
		assert.True(t, policy.CanSetUserPassword(owner, auditorUser))
		assert.False(t, policy.CanSetUserPassword(owner, otherOwner))
		assert.False(t, policy.CanSetUserPassword(auditor, auditorUser))
		assert.True(t, policy.CanSetUserPassword(superuser, otherOwner))
	})
}

func TestAuditEntryRules(t *testing.T) {
	own := &domain.AuditEntry{ID: 3, AuditorID: 5}
	foreign := &domain.AuditEntry{ID: 4, AuditorID: 7}

	assert.True(t, policy.CanCreateAuditEntry(auditor))
	assert.False(t, policy.CanCreateAuditEntry(owner))
	assert.True(t, policy.CanCreateAuditEntry(superuser))

	assert.True(t, policy.CanViewAuditEntry(owner, foreign))
	assert.True(t, policy.CanViewAuditEntry(auditor, own))
	assert.False(t, policy.CanViewAuditEntry(auditor, foreign))

	assert.True(t, policy.CanDeleteAuditEntry(owner))
	assert.False(t, policy.CanDeleteAuditEntry(auditor))
}

func TestSummaryRule(t *testing.T) {
	assert.True(t, policy.CanViewSummary(owner))
	assert.False(t, policy.CanViewSummary(auditor))
}

func TestRuleCombinators(t *testing.T) {
	t.Run("Any", func(t *testing.T) {
		either := policy.Any(policy.IsSuperuser, policy.IsAuditor)
		assert.True(t, either(auditor))
		assert.True(t, either(superuser))
		assert.False(t, either(owner))
	})

	t.Run("All", func(t *testing.T) {
		both := policy.All(policy.IsOwner, policy.IsSuperuser)
		assert.True(t, both(superuser))
		assert.False(t, both(owner))
		assert.False(t, both(auditor))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.False(t, policy.Any()(owner))
		assert.True(t, policy.All()(owner))
	})
}
