package mock

import (
	"context"

	"github.com/fwojciec/viewdocs"
)

var _ viewdocs.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of viewdocs.Renderer.
type Renderer struct {
	RenderFn func(source []byte) ([]byte, error)
}

func (r *Renderer) Render(source []byte) ([]byte, error) {
	return r.RenderFn(source)
}

var _ viewdocs.RenderCache = (*RenderCache)(nil)

// RenderCache is a mock implementation of viewdocs.RenderCache.
type RenderCache struct {
	GetFn func(ctx context.Context, key string) ([]byte, error)
	PutFn func(ctx context.Context, key string, html []byte) error
}

func (c *RenderCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.GetFn(ctx, key)
}

func (c *RenderCache) Put(ctx context.Context, key string, html []byte) error {
	return c.PutFn(ctx, key, html)
}
