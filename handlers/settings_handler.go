package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/models"
	"sweetshop/sheetdb"
)

// GetSettingsHandler returns the shop identity block.
func GetSettingsHandler(c *gin.Context, store sheetdb.Store) {
	settings, err := store.GetShopSettings(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch settings",
		})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettingsHandler upserts the shop identity block used on invoices.
func SaveSettingsHandler(c *gin.Context, store sheetdb.Store) {
	var settings models.ShopSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid settings payload",
		})
		return
	}

	if err := store.SaveShopSettings(c, settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save settings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
