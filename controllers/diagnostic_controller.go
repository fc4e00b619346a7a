package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maa-telecom/repair-pos-api/services"
)

// DiagnosticRequest represents the request body for a diagnostic suggestion
type DiagnosticRequest struct {
	DeviceModel      string `json:"deviceModel" binding:"required"`
	IssueDescription string `json:"issueDescription" binding:"required"`
}

// SuggestDiagnostic handles POST /api/v1/diagnostics - asks the gateway for
// a diagnostic suggestion. The gateway never fails outward: on any upstream
// problem the response still succeeds and carries the fixed fallback text.
func SuggestDiagnostic(c *gin.Context) {
	var req DiagnosticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Device model and issue description are required",
				"details": err.Error(),
			},
		})
		return
	}

	suggestion := services.GetDiagnosticService().SuggestDiagnostic(
		c.Request.Context(),
		req.DeviceModel,
		req.IssueDescription,
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"suggestion": suggestion,
		},
	})
}
