// Package resource provides one typed REST client per managed entity. Every
// client validates payloads locally before touching the network and defers
// transport concerns to the gateway.
package resource

import (
	"context"
	"net/url"
)

// api is the slice of the gateway the resource clients consume.
type api interface {
	GetJSON(ctx context.Context, path string, out interface{}) error
	PostJSON(ctx context.Context, path string, body, out interface{}) error
	PutJSON(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
}

func escape(segment string) string {
	return url.PathEscape(segment)
}

// prunePatch drops empty-string fields so a bulk edit only touches the
// columns the operator actually filled in.
func prunePatch(fields map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{}
	for k, v := range fields {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		payload[k] = v
	}
	return payload
}
