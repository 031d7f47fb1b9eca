package assist

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateTagsRequest carries the post content to tag.
type GenerateTagsRequest struct {
	Content string `json:"content" binding:"required"`
}

// GenerateTagsResponse carries the derived tags and a content preview.
type GenerateTagsResponse struct {
	Success        bool     `json:"success"`
	Tags           []string `json:"tags"`
	ContentPreview string   `json:"content_preview"`
}

// GenerateTags derives tags from post content.
// @Summary      Generate tags for a post
// @Tags         assist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      GenerateTagsRequest  true  "content payload"
// @Success      200      {object}  GenerateTagsResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /api/ai/generate-tags [post]
func (h *Handler) GenerateTags(c *gin.Context) {
	var req GenerateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	tags, err := h.assistService.GenerateTags(c.Request.Context(), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 50001, Message: "Tag generation service unavailable"})
		return
	}

	preview := req.Content
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}

	c.JSON(http.StatusOK, GenerateTagsResponse{
		Success:        true,
		Tags:           tags,
		ContentPreview: preview,
	})
}
