package handler

import (
	"github.com/gin-gonic/gin"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/service"
	"ticketdesk/pkg/utils"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// List 组织列表
// @Summary 组织列表
// @Tags Organization
// @Produce json
// @Success 200 {object} utils.Response{data=[]model.Organization}
// @Router /api/v1/organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	organizations, err := h.orgService.List(currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, organizations)
}

// Get 组织详情
// @Summary 组织详情
// @Tags Organization
// @Produce json
// @Param id path string true "组织ID"
// @Success 200 {object} utils.Response{data=model.Organization}
// @Router /api/v1/organizations/{id} [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	organization, err := h.orgService.GetByID(currentUser(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, organization)
}

// Create 创建组织
// @Summary 创建组织
// @Tags Organization
// @Accept json
// @Produce json
// @Param request body dto.CreateOrganizationRequest true "创建组织请求"
// @Success 200 {object} utils.Response{data=model.Organization}
// @Router /api/v1/organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	organization, err := h.orgService.Create(currentUser(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, organization)
}

// Update 更新组织
// @Summary 更新组织
// @Tags Organization
// @Accept json
// @Produce json
// @Param id path string true "组织ID"
// @Param request body dto.UpdateOrganizationRequest true "更新组织请求"
// @Success 200 {object} utils.Response{data=model.Organization}
// @Router /api/v1/organizations/{id} [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	organization, err := h.orgService.Update(currentUser(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, organization)
}

// Delete 删除组织
// @Summary 删除组织
// @Tags Organization
// @Produce json
// @Param id path string true "组织ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.orgService.Delete(currentUser(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "组织已删除", nil)
}
