package rbac

import "ticketdesk/pkg/constants"

// Subject 授权判定的参与者视图(角色+归属范围)
type Subject struct {
	Role           string
	OrganizationID string
	TeamID         string
}

// 角色等级
var roleRank = map[string]int{
	constants.RoleSuperAdmin: 4,
	constants.RoleOrgAdmin:   3,
	constants.RoleTeamLead:   2,
	constants.RoleUser:       1,
}

// Rank 返回角色等级, 未知角色返回0
func Rank(role string) int {
	return roleRank[role]
}

// HasPermission 判断角色等级是否不低于要求的角色
func HasPermission(role, required string) bool {
	return Rank(role) >= Rank(required) && Rank(role) > 0
}

// CanCreateRole 判断actor能否创建/指派目标角色
func CanCreateRole(actorRole, targetRole string) bool {
	if Rank(targetRole) == 0 {
		return false
	}
	switch actorRole {
	case constants.RoleSuperAdmin:
		return true
	case constants.RoleOrgAdmin:
		return targetRole == constants.RoleOrgAdmin ||
			targetRole == constants.RoleTeamLead ||
			targetRole == constants.RoleUser
	case constants.RoleTeamLead:
		return targetRole == constants.RoleUser
	default:
		return false
	}
}

// CanResetPassword 判断actor能否重置target的密码
func CanResetPassword(actor, target Subject) bool {
	switch actor.Role {
	case constants.RoleSuperAdmin:
		return true
	case constants.RoleOrgAdmin:
		if actor.OrganizationID == "" || actor.OrganizationID != target.OrganizationID {
			return false
		}
		return target.Role == constants.RoleOrgAdmin ||
			target.Role == constants.RoleTeamLead ||
			target.Role == constants.RoleUser
	case constants.RoleTeamLead:
		return actor.TeamID != "" &&
			actor.TeamID == target.TeamID &&
			target.Role == constants.RoleUser
	default:
		return false
	}
}

// IsAdminTier 是否管理员层级(SUPER_ADMIN或ORG_ADMIN)
func IsAdminTier(role string) bool {
	return role == constants.RoleSuperAdmin || role == constants.RoleOrgAdmin
}
