package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelo-app/travelo/internal/content"
)

type loginRequest struct {
	Username string `json:"username"`
}

func (r *Router) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Code: "validation"})
		return
	}

	sess, err := r.actions.Login(c.Request.Context(), req.Username)
	if err != nil {
		r.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":   sess.Username,
		"public_key": sess.PublicKey,
		"avatar":     content.GenerateAvatar(sess.Username),
	})
}

func (r *Router) logoutHandler(c *gin.Context) {
	if err := r.actions.Logout(c.Request.Context()); err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

func (r *Router) sessionHandler(c *gin.Context) {
	sess, err := r.actions.Session(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}

	if !sess.LoggedIn() {
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"logged_in":  true,
		"username":   sess.Username,
		"public_key": sess.PublicKey,
		"avatar":     content.GenerateAvatar(sess.Username),
	})
}
