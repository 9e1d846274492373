package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/client/session"
)

func (c *Client) Users(ctx context.Context) Result[[]session.User] {
	return send(ctx, c, call{
		method:   http.MethodGet,
		path:     []string{"users"},
		fallback: "could not load users",
	}, decodeList[session.User])
}

func (c *Client) Me(ctx context.Context) Result[session.User] {
	return send(ctx, c, call{
		method:   http.MethodGet,
		path:     []string{"users", "me"},
		fallback: "could not load profile",
	}, decodeOne[session.User])
}
