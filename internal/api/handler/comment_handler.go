package handler

import (
	"github.com/gin-gonic/gin"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/service"
	"ticketdesk/pkg/utils"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListByTicket 工单评论列表, 按时间正序
// @Summary 工单评论列表
// @Tags Comment
// @Produce json
// @Param id path string true "工单ID"
// @Success 200 {object} utils.Response{data=[]dto.CommentResponse}
// @Router /api/v1/tickets/{id}/comments [get]
func (h *CommentHandler) ListByTicket(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	comments, err := h.commentService.ListByTicketID(param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, comments)
}

// Update 更新评论, 仅作者可改
// @Summary 更新评论
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path string true "评论ID"
// @Param request body dto.UpdateCommentRequest true "更新评论请求"
// @Success 200 {object} utils.Response{data=model.Comment}
// @Router /api/v1/comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	comment, err := h.commentService.Update(currentUser(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, comment)
}

// Delete 删除评论, 作者或管理员可删
// @Summary 删除评论
// @Tags Comment
// @Produce json
// @Param id path string true "评论ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.commentService.Delete(currentUser(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "评论已删除", nil)
}
