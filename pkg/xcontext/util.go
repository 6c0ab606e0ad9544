package xcontext

import (
	"context"
	"time"
)

type (
	userIDKey    struct{}
	responseKey  struct{}
	startTimeKey struct{}
)

// responseHolder keeps the response and error mutable so that After
// middlewares and closers can observe what the handler produced.
type responseHolder struct {
	resp any
	err  error
}

func WithResponseHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseKey{}, &responseHolder{})
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		holder.resp = resp
	}
}

func GetResponse(ctx context.Context) any {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return holder.resp
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		holder.err = err
	}
}

func GetError(ctx context.Context) error {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return holder.err
	}

	return nil
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id := ctx.Value(userIDKey{})
	if id == nil {
		return ""
	}

	return id.(string)
}
