package handler

import (
	"github.com/gin-gonic/gin"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/service"
	"ticketdesk/pkg/utils"
)

type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// List 可见模板列表: 自己创建的加共享的
// @Summary 工单模板列表
// @Tags Template
// @Produce json
// @Success 200 {object} utils.Response{data=[]model.Template}
// @Router /api/v1/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateService.List(currentUser(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, templates)
}

// Get 模板详情
// @Summary 工单模板详情
// @Tags Template
// @Produce json
// @Param id path string true "模板ID"
// @Success 200 {object} utils.Response{data=model.Template}
// @Router /api/v1/templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	template, err := h.templateService.GetByID(currentUser(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, template)
}

// Create 创建模板
// @Summary 创建工单模板
// @Tags Template
// @Accept json
// @Produce json
// @Param request body dto.CreateTemplateRequest true "创建模板请求"
// @Success 200 {object} utils.Response{data=model.Template}
// @Router /api/v1/templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	template, err := h.templateService.Create(currentUser(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, template)
}

// Update 更新模板, 仅创建者可改
// @Summary 更新工单模板
// @Tags Template
// @Accept json
// @Produce json
// @Param id path string true "模板ID"
// @Param request body dto.UpdateTemplateRequest true "更新模板请求"
// @Success 200 {object} utils.Response{data=model.Template}
// @Router /api/v1/templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	template, err := h.templateService.Update(currentUser(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, template)
}

// Delete 删除模板, 仅创建者可删
// @Summary 删除工单模板
// @Tags Template
// @Produce json
// @Param id path string true "模板ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.templateService.Delete(currentUser(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "模板已删除", nil)
}
