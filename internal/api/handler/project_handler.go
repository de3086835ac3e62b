package handler

import (
	"github.com/gin-gonic/gin"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/service"
	"ticketdesk/pkg/utils"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// List 项目列表, 按角色可见范围过滤
// @Summary 项目列表
// @Tags Project
// @Produce json
// @Success 200 {object} utils.Response{data=[]model.Project}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, projects)
}

// Get 项目详情
// @Summary 项目详情
// @Tags Project
// @Produce json
// @Param id path string true "项目ID"
// @Success 200 {object} utils.Response{data=model.Project}
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	project, err := h.projectService.GetByID(currentUser(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// Create 创建项目
// @Summary 创建项目
// @Tags Project
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "创建项目请求"
// @Success 200 {object} utils.Response{data=model.Project}
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	project, err := h.projectService.Create(currentUser(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// Update 更新项目
// @Summary 更新项目
// @Tags Project
// @Accept json
// @Produce json
// @Param id path string true "项目ID"
// @Param request body dto.UpdateProjectRequest true "更新项目请求"
// @Success 200 {object} utils.Response{data=model.Project}
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	project, err := h.projectService.Update(currentUser(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目
// @Tags Project
// @Produce json
// @Param id path string true "项目ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.projectService.Delete(currentUser(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "项目已删除", nil)
}

// AddMember 添加项目成员
// @Summary 添加项目成员
// @Tags Project
// @Accept json
// @Produce json
// @Param id path string true "项目ID"
// @Param request body dto.AddProjectMemberRequest true "添加成员请求"
// @Success 200 {object} utils.Response
// @Router /api/v1/projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.AddProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.projectService.AddMember(currentUser(c), param.ID, req.UserID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "成员已添加", nil)
}

// RemoveMember 移除项目成员
// @Summary 移除项目成员
// @Tags Project
// @Produce json
// @Param id path string true "项目ID"
// @Param userId path string true "用户ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/projects/{id}/members/{userId} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.projectService.RemoveMember(currentUser(c), param.ID, c.Param("userId")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "成员已移除", nil)
}
