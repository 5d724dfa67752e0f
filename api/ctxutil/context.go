// Package ctxutil bridges gin requests to the context the services and
// repositories read.
package ctxutil

import (
	"context"

	"backoffice/api/response"
	"backoffice/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context carrying the request id, so
// SQL logs can be correlated with the HTTP log line.
func WithRequestID(ctx *gin.Context) context.Context {
	return persistence.ContextWithRequestID(ctx.Request.Context(), response.GetRequestID(ctx))
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
