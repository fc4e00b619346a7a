package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maa-telecom/repair-pos-api/models"
	"github.com/maa-telecom/repair-pos-api/store"
)

// recentActivityLimit caps the dashboard's recent-activities card.
const recentActivityLimit = 5

// GetDashboard handles GET /api/v1/dashboard - returns the stat cards and
// the most recent records for the dashboard view
func GetDashboard(c *gin.Context) {
	repairs := store.Get().GetAll()

	recent := repairs
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"stats": gin.H{
				"totalRepairs": len(repairs),
				"pending":      models.CountByStatus(repairs, models.StatusPending),
				"completed":    models.CountCompletedOrDelivered(repairs),
				"revenueToday": models.RevenueToday(repairs, time.Now()),
			},
			"recentActivities": recent,
		},
	})
}
