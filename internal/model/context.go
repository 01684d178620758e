package model

import "context"

type ContextManager interface {
	SetPayloadToContext(ctx context.Context, payload TokenPayload) context.Context
	GetPayloadFromContext(ctx context.Context) (TokenPayload, bool)
}
