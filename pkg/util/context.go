package util

import "context"

type ContextKey string

func (c ContextKey) String() string {
	return "clipscope_" + string(c)
}

var RequestIDContextKey ContextKey = "request_id"
var SelectorContextKey ContextKey = "selector"

// LogContextKeys lists the keys whose values tlog appends to every record.
var LogContextKeys = []ContextKey{RequestIDContextKey, SelectorContextKey}

func WithValue(ctx context.Context, key ContextKey, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

func Value(ctx context.Context, key ContextKey) (string, bool) {
	value, ok := ctx.Value(key).(string)
	return value, ok && value != ""
}
