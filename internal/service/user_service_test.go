package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewOrganizationRepository(db),
		repository.NewTeamRepository(db),
	)
}

func TestListUsers_RoleScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	orgA := &model.Organization{Name: "A组织", IsActive: true}
	orgB := &model.Organization{Name: "B组织", IsActive: true}
	require.NoError(t, db.Create(orgA).Error)
	require.NoError(t, db.Create(orgB).Error)
	teamA := &model.Team{Name: "A团队", OrganizationID: &orgA.ID, IsActive: true}
	require.NoError(t, db.Create(teamA).Error)

	superAdmin := createTestUser(t, db, "root", constants.RoleSuperAdmin, nil, nil)
	orgAdmin := createTestUser(t, db, "orgadmin", constants.RoleOrgAdmin, &orgA.ID, nil)
	teamLead := createTestUser(t, db, "lead", constants.RoleTeamLead, &orgA.ID, &teamA.ID)
	createTestUser(t, db, "member", constants.RoleUser, &orgA.ID, &teamA.ID)
	createTestUser(t, db, "outsider", constants.RoleUser, &orgB.ID, nil)

	_, total, err := svc.List(superAdmin, &dto.ListUsersQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	_, total, err = svc.List(orgAdmin, &dto.ListUsersQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, total, err = svc.List(teamLead, &dto.ListUsersQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestCreateUser_RolePermissionAndPinning(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	org := &model.Organization{Name: "组织", IsActive: true}
	require.NoError(t, db.Create(org).Error)
	team := &model.Team{Name: "团队", OrganizationID: &org.ID, IsActive: true}
	require.NoError(t, db.Create(team).Error)

	teamLead := createTestUser(t, db, "lead", constants.RoleTeamLead, &org.ID, &team.ID)

	// TEAM_LEAD不能创建TEAM_LEAD
	_, err := svc.Create(teamLead, &dto.CreateUserRequest{
		Name: "越权", Email: "x@example.com", Password: "secret123",
		Role: constants.RoleTeamLead,
	})
	assertErrCode(t, err, pkgErrors.CodeForbidden)

	// TEAM_LEAD创建USER, 归属被钉死到自己的组织和团队
	created, err := svc.Create(teamLead, &dto.CreateUserRequest{
		Name: "组员", Email: "member@example.com", Password: "secret123",
		Role: constants.RoleUser,
	})
	require.NoError(t, err)
	require.NotNil(t, created.OrganizationID)
	assert.Equal(t, org.ID, *created.OrganizationID)
	require.NotNil(t, created.TeamID)
	assert.Equal(t, team.ID, *created.TeamID)
}

func TestGetUser_ScopeChecks(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	orgA := &model.Organization{Name: "A组织", IsActive: true}
	orgB := &model.Organization{Name: "B组织", IsActive: true}
	require.NoError(t, db.Create(orgA).Error)
	require.NoError(t, db.Create(orgB).Error)

	orgAdmin := createTestUser(t, db, "orgadmin", constants.RoleOrgAdmin, &orgA.ID, nil)
	outsider := createTestUser(t, db, "outsider", constants.RoleUser, &orgB.ID, nil)
	insider := createTestUser(t, db, "insider", constants.RoleUser, &orgA.ID, nil)

	_, err := svc.GetByID(orgAdmin, outsider.ID)
	assertErrCode(t, err, pkgErrors.CodeForbidden)

	got, err := svc.GetByID(orgAdmin, insider.ID)
	require.NoError(t, err)
	assert.Equal(t, insider.ID, got.ID)
}

func TestDeleteUser_AdminTierOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	org := &model.Organization{Name: "组织", IsActive: true}
	require.NoError(t, db.Create(org).Error)
	teamLead := createTestUser(t, db, "lead", constants.RoleTeamLead, &org.ID, nil)
	victim := createTestUser(t, db, "victim", constants.RoleUser, &org.ID, nil)

	err := svc.Delete(teamLead, victim.ID)
	assertErrCode(t, err, pkgErrors.CodeForbidden)

	orgAdmin := createTestUser(t, db, "orgadmin", constants.RoleOrgAdmin, &org.ID, nil)
	require.NoError(t, svc.Delete(orgAdmin, victim.ID))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", victim.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestResetPassword_Permissions(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	org := &model.Organization{Name: "组织", IsActive: true}
	require.NoError(t, db.Create(org).Error)
	teamA := &model.Team{Name: "A团队", OrganizationID: &org.ID, IsActive: true}
	teamB := &model.Team{Name: "B团队", OrganizationID: &org.ID, IsActive: true}
	require.NoError(t, db.Create(teamA).Error)
	require.NoError(t, db.Create(teamB).Error)

	lead := createTestUser(t, db, "lead", constants.RoleTeamLead, &org.ID, &teamA.ID)
	sameTeam := createTestUser(t, db, "same", constants.RoleUser, &org.ID, &teamA.ID)
	otherTeam := createTestUser(t, db, "other", constants.RoleUser, &org.ID, &teamB.ID)

	require.NoError(t, svc.ResetPassword(lead, sameTeam.ID, &dto.ResetPasswordRequest{NewPassword: "newpass1"}))

	err := svc.ResetPassword(lead, otherTeam.ID, &dto.ResetPasswordRequest{NewPassword: "newpass1"})
	assertErrCode(t, err, pkgErrors.CodeForbidden)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, "id = ?", sameTeam.ID).Error)
	assert.NotEqual(t, sameTeam.Password, reloaded.Password)
}

func TestTeamDelete_GuardsActiveUsers(t *testing.T) {
	db := setupTestDB(t)
	teamSvc := NewTeamService(
		repository.NewTeamRepository(db),
		repository.NewOrganizationRepository(db),
		repository.NewUserRepository(db),
	)

	org := &model.Organization{Name: "组织", IsActive: true}
	require.NoError(t, db.Create(org).Error)
	team := &model.Team{Name: "团队", OrganizationID: &org.ID, IsActive: true}
	require.NoError(t, db.Create(team).Error)

	superAdmin := createTestUser(t, db, "root", constants.RoleSuperAdmin, nil, nil)
	member := createTestUser(t, db, "member", constants.RoleUser, &org.ID, &team.ID)

	err := teamSvc.Delete(superAdmin, team.ID)
	assertErrCode(t, err, pkgErrors.CodeConflict)

	// 用户停用后团队可删除
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", member.ID).
		Update("is_active", false).Error)
	require.NoError(t, teamSvc.Delete(superAdmin, team.ID))
}
