package handler

import (
	"github.com/gin-gonic/gin"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/service"
	"ticketdesk/pkg/utils"
)

type TeamHandler struct {
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// List 团队列表
// @Summary 团队列表
// @Tags Team
// @Produce json
// @Success 200 {object} utils.Response{data=[]model.Team}
// @Router /api/v1/teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teamService.List(currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, teams)
}

// Get 团队详情
// @Summary 团队详情
// @Tags Team
// @Produce json
// @Param id path string true "团队ID"
// @Success 200 {object} utils.Response{data=model.Team}
// @Router /api/v1/teams/{id} [get]
func (h *TeamHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	team, err := h.teamService.GetByID(currentUser(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, team)
}

// Create 创建团队
// @Summary 创建团队
// @Tags Team
// @Accept json
// @Produce json
// @Param request body dto.CreateTeamRequest true "创建团队请求"
// @Success 200 {object} utils.Response{data=model.Team}
// @Router /api/v1/teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	team, err := h.teamService.Create(currentUser(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, team)
}

// Update 更新团队
// @Summary 更新团队
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "团队ID"
// @Param request body dto.UpdateTeamRequest true "更新团队请求"
// @Success 200 {object} utils.Response{data=model.Team}
// @Router /api/v1/teams/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	team, err := h.teamService.Update(currentUser(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, team)
}

// Delete 删除团队
// @Summary 删除团队
// @Tags Team
// @Produce json
// @Param id path string true "团队ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.teamService.Delete(currentUser(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "团队已删除", nil)
}
