package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maa-telecom/repair-pos-api/models"
	"github.com/maa-telecom/repair-pos-api/store"
	"github.com/maa-telecom/repair-pos-api/utils"
)

// GetInvoice handles GET /api/v1/repairs/:id/invoice - returns everything
// the invoice view renders: shop details, the record, and the billing
// breakdown. The subtotal is parts plus labor; the estimated cost is not
// part of the invoice arithmetic.
func GetInvoice(c *gin.Context) {
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

	subtotal, due := models.InvoiceTotal(repair)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"shop":   models.MaaTelecom,
			"repair": repair,
			"billing": gin.H{
				"partsTotal":  models.PartsTotal(repair),
				"laborCharge": repair.LaborCharge,
				"subtotal":    subtotal,
				"advancePaid": repair.AdvancePaid,
				"due":         due,
			},
		},
	})
}

// PrintInvoice handles GET /api/v1/repairs/:id/invoice/print - renders the
// invoice as a printable HTML document
func PrintInvoice(c *gin.Context) {
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

	html, err := utils.RenderInvoiceHTML(models.MaaTelecom, repair)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RENDER_ERROR",
				"message": "Failed to render invoice",
			},
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
