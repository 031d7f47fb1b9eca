package assist

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health probes the chat model with a trivial prompt.
// @Summary      Check assistant availability
// @Tags         assist
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /api/ai/health [get]
func (h *Handler) Health(c *gin.Context) {
	reply, err := h.assistService.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":   false,
			"ai_status": "unavailable",
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"ai_status":     "operational",
		"test_response": reply,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
