package handler

import (
	"github.com/gin-gonic/gin"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/service"
	"ticketdesk/pkg/utils"
)

type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// List 标签列表
// @Summary 标签列表
// @Tags Tag
// @Produce json
// @Success 200 {object} utils.Response{data=[]model.Tag}
// @Router /api/v1/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List()
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tags)
}

// Get 标签详情
// @Summary 标签详情
// @Tags Tag
// @Produce json
// @Param id path string true "标签ID"
// @Success 200 {object} utils.Response{data=model.Tag}
// @Router /api/v1/tags/{id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	tag, err := h.tagService.GetByID(param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tag)
}

// Create 创建标签
// @Summary 创建标签
// @Tags Tag
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "创建标签请求"
// @Success 200 {object} utils.Response{data=model.Tag}
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	tag, err := h.tagService.Create(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tag)
}

// Update 更新标签
// @Summary 更新标签
// @Tags Tag
// @Accept json
// @Produce json
// @Param id path string true "标签ID"
// @Param request body dto.UpdateTagRequest true "更新标签请求"
// @Success 200 {object} utils.Response{data=model.Tag}
// @Router /api/v1/tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	tag, err := h.tagService.Update(param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tag)
}

// Delete 删除标签
// @Summary 删除标签
// @Tags Tag
// @Produce json
// @Param id path string true "标签ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.tagService.Delete(param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "标签已删除", nil)
}
