package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maa-telecom/repair-pos-api/models"
)

// ListParts handles GET /api/v1/parts - returns the fixed common-parts
// catalog offered on the intake form
func ListParts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.CommonParts,
	})
}

// GetShopDetails handles GET /api/v1/shop - returns the shop metadata used
// on invoices
func GetShopDetails(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.MaaTelecom,
	})
}
