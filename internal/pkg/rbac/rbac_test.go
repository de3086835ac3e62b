package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ticketdesk/pkg/constants"
)

func TestRank(t *testing.T) {
	assert.Equal(t, 4, Rank(constants.RoleSuperAdmin))
	assert.Equal(t, 3, Rank(constants.RoleOrgAdmin))
	assert.Equal(t, 2, Rank(constants.RoleTeamLead))
	assert.Equal(t, 1, Rank(constants.RoleUser))
	assert.Equal(t, 0, Rank("UNKNOWN"))
	assert.Equal(t, 0, Rank(""))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(constants.RoleSuperAdmin, constants.RoleOrgAdmin))
	assert.True(t, HasPermission(constants.RoleOrgAdmin, constants.RoleOrgAdmin))
	assert.True(t, HasPermission(constants.RoleTeamLead, constants.RoleUser))
	assert.False(t, HasPermission(constants.RoleUser, constants.RoleTeamLead))
	assert.False(t, HasPermission("UNKNOWN", constants.RoleUser))
}

// 全量枚举 4x4 角色组合
func TestCanCreateRole(t *testing.T) {
	tests := []struct {
		actor  string
		target string
		want   bool
	}{
		{constants.RoleSuperAdmin, constants.RoleSuperAdmin, true},
		{constants.RoleSuperAdmin, constants.RoleOrgAdmin, true},
		{constants.RoleSuperAdmin, constants.RoleTeamLead, true},
		{constants.RoleSuperAdmin, constants.RoleUser, true},

		{constants.RoleOrgAdmin, constants.RoleSuperAdmin, false},
		{constants.RoleOrgAdmin, constants.RoleOrgAdmin, true},
		{constants.RoleOrgAdmin, constants.RoleTeamLead, true},
		{constants.RoleOrgAdmin, constants.RoleUser, true},

		{constants.RoleTeamLead, constants.RoleSuperAdmin, false},
		{constants.RoleTeamLead, constants.RoleOrgAdmin, false},
		{constants.RoleTeamLead, constants.RoleTeamLead, false},
		{constants.RoleTeamLead, constants.RoleUser, true},

		{constants.RoleUser, constants.RoleSuperAdmin, false},
		{constants.RoleUser, constants.RoleOrgAdmin, false},
		{constants.RoleUser, constants.RoleTeamLead, false},
		{constants.RoleUser, constants.RoleUser, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanCreateRole(tt.actor, tt.target),
			"actor=%s target=%s", tt.actor, tt.target)
	}
}

func TestCanCreateRole_UnknownTarget(t *testing.T) {
	assert.False(t, CanCreateRole(constants.RoleSuperAdmin, "UNKNOWN"))
	assert.False(t, CanCreateRole(constants.RoleSuperAdmin, ""))
}

func TestCanResetPassword(t *testing.T) {
	tests := []struct {
		name   string
		actor  Subject
		target Subject
		want   bool
	}{
		{
			name:   "super admin resets anyone",
			actor:  Subject{Role: constants.RoleSuperAdmin},
			target: Subject{Role: constants.RoleSuperAdmin, OrganizationID: "org-b"},
			want:   true,
		},
		{
			name:   "org admin resets user in own org",
			actor:  Subject{Role: constants.RoleOrgAdmin, OrganizationID: "org-a"},
			target: Subject{Role: constants.RoleUser, OrganizationID: "org-a"},
			want:   true,
		},
		{
			name:   "org admin resets org admin in own org",
			actor:  Subject{Role: constants.RoleOrgAdmin, OrganizationID: "org-a"},
			target: Subject{Role: constants.RoleOrgAdmin, OrganizationID: "org-a"},
			want:   true,
		},
		{
			name:   "org admin cannot reset super admin",
			actor:  Subject{Role: constants.RoleOrgAdmin, OrganizationID: "org-a"},
			target: Subject{Role: constants.RoleSuperAdmin, OrganizationID: "org-a"},
			want:   false,
		},
		{
			name:   "org admin cannot cross org",
			actor:  Subject{Role: constants.RoleOrgAdmin, OrganizationID: "org-a"},
			target: Subject{Role: constants.RoleUser, OrganizationID: "org-b"},
			want:   false,
		},
		{
			name:   "org admin without org scope denied",
			actor:  Subject{Role: constants.RoleOrgAdmin},
			target: Subject{Role: constants.RoleUser},
			want:   false,
		},
		{
			name:   "team lead resets user in own team",
			actor:  Subject{Role: constants.RoleTeamLead, TeamID: "team-a"},
			target: Subject{Role: constants.RoleUser, TeamID: "team-a"},
			want:   true,
		},
		{
			name:   "team lead cannot reset team lead",
			actor:  Subject{Role: constants.RoleTeamLead, TeamID: "team-a"},
			target: Subject{Role: constants.RoleTeamLead, TeamID: "team-a"},
			want:   false,
		},
		{
			name:   "team lead cannot cross team",
			actor:  Subject{Role: constants.RoleTeamLead, TeamID: "team-a"},
			target: Subject{Role: constants.RoleUser, TeamID: "team-b"},
			want:   false,
		},
		{
			name:   "user cannot reset anyone",
			actor:  Subject{Role: constants.RoleUser, TeamID: "team-a"},
			target: Subject{Role: constants.RoleUser, TeamID: "team-a"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanResetPassword(tt.actor, tt.target))
		})
	}
}
