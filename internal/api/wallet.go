package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelo-app/travelo/internal/actions"
	"github.com/travelo-app/travelo/internal/models"
)

type voteRequest struct {
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
}

func (r *Router) voteHandler(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Code: "validation"})
		return
	}

	if err := r.actions.Vote(c.Request.Context(), req.Author, req.Permlink); err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voted": true})
}

type transferRequest struct {
	To       string  `json:"to"`
	Amount   float64 `json:"amount"`
	Memo     string  `json:"memo"`
	Currency string  `json:"currency"`
}

func (r *Router) transferHandler(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Code: "validation"})
		return
	}

	err := r.actions.Transfer(c.Request.Context(), actions.TransferInput{
		To:       req.To,
		Amount:   req.Amount,
		Memo:     req.Memo,
		Currency: req.Currency,
	})
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transferred": true})
}

type tipRequest struct {
	Authors  []string `json:"authors"`
	Amount   float64  `json:"amount"`
	Currency string   `json:"currency"`
}

func (r *Router) tipHandler(c *gin.Context) {
	var req tipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Code: "validation"})
		return
	}

	var selection models.SelectionSet
	for _, author := range req.Authors {
		selection.Toggle(models.Post{Author: author})
	}

	report, err := r.actions.BatchTip(c.Request.Context(), &selection, req.Amount, req.Currency)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
