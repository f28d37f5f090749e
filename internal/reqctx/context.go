package reqctx

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	keyRID ctxKey = "rid"
	keyUID ctxKey = "uid"
)

// WithRID stores the request correlation id.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// WithUID stores the caller's user id.
func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, keyUID, uid)
}

// UID returns the caller's user id if present.
func UID(ctx context.Context) string {
	v, _ := ctx.Value(keyUID).(string)
	return v
}

// Fields returns the zap fields for whatever correlation data ctx carries.
func Fields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if rid := RID(ctx); rid != "" {
		fields = append(fields, zap.String("rid", rid))
	}
	if uid := UID(ctx); uid != "" {
		fields = append(fields, zap.String("uid", uid))
	}
	return fields
}
