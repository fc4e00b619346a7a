package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maa-telecom/repair-pos-api/models"
	"github.com/maa-telecom/repair-pos-api/store"
)

// CreateRepairRequest represents the request body for creating a repair job
type CreateRepairRequest struct {
	CustomerName     string              `json:"customerName" binding:"required"`
	CustomerPhone    string              `json:"customerPhone" binding:"required"`
	DeviceModel      string              `json:"deviceModel" binding:"required"`
	IMEI             string              `json:"imei"`
	IssueDescription string              `json:"issueDescription" binding:"required"`
	EstimatedCost    float64             `json:"estimatedCost" binding:"gte=0"`
	AdvancePaid      float64             `json:"advancePaid" binding:"gte=0"`
	LaborCharge      float64             `json:"laborCharge" binding:"gte=0"`
	PartsUsed        []models.Part       `json:"partsUsed"`
	Status           models.RepairStatus `json:"status"`
	Notes            string              `json:"notes"`
	AIDiagnostic     string              `json:"aiDiagnostic"`
}

// RepairRow is one row of the repair-list view: the record plus the amounts
// shown in the Amount column.
type RepairRow struct {
	models.RepairJob
	RowTotal float64 `json:"rowTotal"`
}

// CreateRepair handles POST /api/v1/repairs - records a new repair job
func CreateRepair(c *gin.Context) {
	var req CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Status != "" && !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown repair status: " + string(req.Status),
			},
		})
		return
	}

	repair := store.Get().Create(store.Draft{
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		DeviceModel:      req.DeviceModel,
		IMEI:             req.IMEI,
		IssueDescription: req.IssueDescription,
		EstimatedCost:    req.EstimatedCost,
		AdvancePaid:      req.AdvancePaid,
		LaborCharge:      req.LaborCharge,
		PartsUsed:        req.PartsUsed,
		Status:           req.Status,
		Notes:            req.Notes,
		AIDiagnostic:     req.AIDiagnostic,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    repair,
	})
}

// ListRepairs handles GET /api/v1/repairs - lists repair jobs, newest first,
// optionally filtered by the search query parameter
func ListRepairs(c *gin.Context) {
	repairs := models.FilterBySearch(store.Get().GetAll(), c.Query("search"))

	rows := make([]RepairRow, len(repairs))
	for i, r := range repairs {
		rows[i] = RepairRow{
			RepairJob: r,
			RowTotal:  models.ListRowTotal(r),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
		"meta": gin.H{
			"count": len(rows),
		},
	})
}

// GetRepair handles GET /api/v1/repairs/:id - fetches a single repair job
func GetRepair(c *gin.Context) {
	repair, found := store.Get().FindByID(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Repair record not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    repair,
	})
}

// DeleteRepair handles DELETE /api/v1/repairs/:id - removes a repair record.
// Deletion is irreversible, so it is gated behind an explicit confirm=true
// query parameter; without it nothing is removed.
func DeleteRepair(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFIRMATION_REQUIRED",
				"message": "Deleting a repair record is irreversible. Repeat the request with confirm=true.",
			},
		})
		return
	}

	if !store.Get().Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Repair record not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Repair record deleted",
	})
}
