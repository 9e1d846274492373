package api

import (
	"context"
	"net/http"
)

type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Note struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    CategoryRef `json:"category"`
	UserID      int64       `json:"user_id"`
}

// NoteInput is the create/update payload; Category is the category id.
type NoteInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    int64  `json:"category"`
}

func (c *Client) Notes(ctx context.Context) Result[[]Note] {
	return send(ctx, c, call{
		method:   http.MethodGet,
		path:     []string{"notes"},
		fallback: "could not load notes",
	}, decodeList[Note])
}

func (c *Client) CreateNote(ctx context.Context, in NoteInput) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPost,
		path:     []string{"notes"},
		body:     in,
		fallback: "could not create note",
	}, decodeMessage)
}

func (c *Client) UpdateNote(ctx context.Context, noteID int64, in NoteInput) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPut,
		path:     []string{"notes", idPath(noteID)},
		body:     in,
		fallback: "could not update note",
	}, decodeMessage)
}

func (c *Client) DeleteNote(ctx context.Context, noteID int64) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodDelete,
		path:     []string{"notes", idPath(noteID)},
		fallback: "could not delete note",
	}, decodeMessage)
}
