package testing

import "context"

type requestKey struct{}

type requestInfo struct {
	index int
	body  map[string]any
}

func withRequest(ctx context.Context, index int, body map[string]any) context.Context {
	return context.WithValue(ctx, requestKey{}, requestInfo{index: index, body: body})
}

func requestFrom(ctx context.Context) requestInfo {
	info, ok := ctx.Value(requestKey{}).(requestInfo)
	if !ok {
		return requestInfo{index: -1}
	}
	return info
}

func bodyFrom(ctx context.Context) map[string]any {
	body := requestFrom(ctx).body
	if body == nil {
		return map[string]any{}
	}
	return body
}
