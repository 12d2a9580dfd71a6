package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/actions"
	"github.com/travelo-app/travelo/internal/wallet"
)

// errorBody is the JSON envelope for every failed request.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError converts the application error taxonomy to an HTTP status
// and a user-facing message. Nothing below this layer leaks stack or
// wire detail to the client.
func (r *Router) writeError(c *gin.Context, err error) {
	var verr *actions.ValidationError
	var rej *actions.RemoteRejection

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorBody{Error: verr.Error(), Code: "validation"})
	case errors.Is(err, actions.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, errorBody{Error: "please log in first", Code: "unauthenticated"})
	case errors.Is(err, wallet.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorBody{Error: "wallet extension is not available", Code: "wallet_unavailable"})
	case errors.As(err, &rej):
		c.JSON(http.StatusUnprocessableEntity, errorBody{Error: rej.Error(), Code: "remote_rejection"})
	default:
		r.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, errorBody{Error: "operation failed, please try again", Code: "network"})
	}
}
