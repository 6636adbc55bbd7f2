package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// RequestData carries the authenticated caller's identity through a request.
type RequestData struct {
	UserID       uuid.UUID
	Phone        string
	TokenString  string
	RefreshToken string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, contextKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(contextKey{}).(*RequestData)
	return rd
}
