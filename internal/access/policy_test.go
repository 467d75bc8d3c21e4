package access

import (
	"testing"

	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMember(role models.MemberRole) *models.CompanyMember {
	return &models.CompanyMember{UserID: uuid.New(), CompanyID: uuid.New(), Role: role}
}

func TestAuthorizeMatrix(t *testing.T) {
	policy, err := NewPolicy()
	require.NoError(t, err)

	admin := newMember(models.MemberRoleAdmin)
	member := newMember(models.MemberRoleMember)

	tests := []struct {
		resource Resource
		action   Action
		member   Decision
		admin    Decision
	}{
		{ResourceCompany, ActionRead, Allowed, Allowed},
		{ResourceCompany, ActionWrite, Denied, Allowed},
		{ResourceMember, ActionRead, Allowed, Allowed},
		{ResourceInvitation, ActionWrite, Denied, Allowed},
		{ResourceProject, ActionRead, Allowed, Allowed},
		{ResourceProject, ActionWrite, Denied, Allowed},
		{ResourceTask, ActionRead, Allowed, Allowed},
		{ResourceTask, ActionWrite, Denied, Allowed},
		{ResourceSale, ActionRead, Denied, Allowed},
		{ResourceSale, ActionWrite, Denied, Allowed},
	}

	for _, tt := range tests {
		t.Run(string(tt.resource)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.member, policy.Authorize(member, tt.resource, tt.action), "member")
			assert.Equal(t, tt.admin, policy.Authorize(admin, tt.resource, tt.action), "admin")
			assert.Equal(t, Denied, policy.Authorize(nil, tt.resource, tt.action), "no membership")
		})
	}
}

func TestAuthorizeUnknownRole(t *testing.T) {
	policy, err := NewPolicy()
	require.NoError(t, err)

	assert.Equal(t, Denied, policy.Authorize(newMember("admin"), ResourceTask, ActionRead))
	assert.Equal(t, Denied, policy.Authorize(newMember("Owner"), ResourceTask, ActionRead))
}

func TestCheck(t *testing.T) {
	policy, err := NewPolicy()
	require.NoError(t, err)

	t.Run("no membership", func(t *testing.T) {
		err := policy.Check(nil, ResourceTask, ActionRead)
		assert.ErrorIs(t, err, apperrors.ErrNoCompany)
	})

	t.Run("member mutating a task", func(t *testing.T) {
		err := policy.Check(newMember(models.MemberRoleMember), ResourceTask, ActionWrite)
		require.Error(t, err)
		assert.True(t, apperrors.IsAuthorization(err))
		assert.Equal(t, "Only company admins can manage tasks", err.Error())
	})

	t.Run("admin", func(t *testing.T) {
		assert.NoError(t, policy.Check(newMember(models.MemberRoleAdmin), ResourceSale, ActionWrite))
	})
}

func TestCheckCompany(t *testing.T) {
	policy, err := NewPolicy()
	require.NoError(t, err)

	admin := newMember(models.MemberRoleAdmin)
	assert.NoError(t, policy.CheckCompany(admin, admin.CompanyID, ResourceCompany, ActionWrite))
	assert.ErrorIs(t, policy.CheckCompany(admin, uuid.New(), ResourceCompany, ActionWrite), apperrors.ErrNotCompanyMember)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allowed", Allowed.String())
	assert.Equal(t, "denied", Denied.String())
}
