package api

import (
	"context"
	"net/http"
)

type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UserID    int64  `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

type CategoryInput struct {
	Name string `json:"name"`
}

func (c *Client) Categories(ctx context.Context) Result[[]Category] {
	return send(ctx, c, call{
		method:   http.MethodGet,
		path:     []string{"categories"},
		fallback: "could not load categories",
	}, decodeList[Category])
}

func (c *Client) Category(ctx context.Context, categoryID int64) Result[Category] {
	return send(ctx, c, call{
		method:   http.MethodGet,
		path:     []string{"categories", idPath(categoryID)},
		fallback: "could not load category",
	}, decodeOne[Category])
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPost,
		path:     []string{"categories"},
		body:     in,
		fallback: "could not create category",
	}, decodeMessage)
}

func (c *Client) UpdateCategory(ctx context.Context, categoryID int64, in CategoryInput) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPut,
		path:     []string{"categories", idPath(categoryID)},
		body:     in,
		fallback: "could not update category",
	}, decodeMessage)
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID int64) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodDelete,
		path:     []string{"categories", idPath(categoryID)},
		fallback: "could not delete category",
	}, decodeMessage)
}
