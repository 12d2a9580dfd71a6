package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelo-app/travelo/internal/actions"
	"github.com/travelo-app/travelo/internal/models"
)

func (r *Router) adHandler(c *gin.Context) {
	var req actions.AdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Code: "validation"})
		return
	}

	placement, err := r.actions.PlaceAd(c.Request.Context(), req)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, placement)
}

func (r *Router) currentAdHandler(c *gin.Context) {
	placement, err := r.actions.CurrentAd(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}
	if placement == nil {
		c.JSON(http.StatusOK, gin.H{"active": false, "plans": models.AdPlans})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "ad": placement, "plans": models.AdPlans})
}

// guideListItem is a catalog entry plus the buyer's ownership flag.
type guideListItem struct {
	models.Guide
	Purchased bool `json:"purchased"`
}

func (r *Router) guidesHandler(c *gin.Context) {
	receipts, err := r.actions.Receipts(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}

	owned := make(map[string]bool, len(receipts))
	for _, receipt := range receipts {
		owned[receipt.GuideID] = true
	}

	items := make([]guideListItem, 0, len(models.GuideCatalog))
	for _, guide := range models.GuideCatalog {
		items = append(items, guideListItem{Guide: guide, Purchased: owned[guide.ID]})
	}
	c.JSON(http.StatusOK, gin.H{"guides": items})
}

func (r *Router) guidePurchaseHandler(c *gin.Context) {
	guide := models.GuideByID(c.Param("id"))
	if guide == nil {
		c.JSON(http.StatusNotFound, errorBody{Error: "guide not found", Code: "not_found"})
		return
	}

	receipt, err := r.actions.PurchaseGuide(c.Request.Context(), *guide)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
