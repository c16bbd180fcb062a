package rest

import (
	"context"
	"net/http"
)

type Room struct {
	JoinCode string `json:"joinCode"`
	Name     string `json:"name"`
}

type createRoomRequest struct {
	Name string `json:"name"`
}

func (c *Client) CreateRoom(ctx context.Context, name string) (Room, error) {
	var room Room
	err := c.do(ctx, http.MethodPost, "/rooms", createRoomRequest{Name: name}, &room)
	return room, err
}

func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	var rooms []Room
	err := c.do(ctx, http.MethodGet, "/rooms", nil, &rooms)
	return rooms, err
}

// CurrentRoom returns the room the user currently occupies, or nil when the
// server answers 404: absence is a valid result, not an error.
func (c *Client) CurrentRoom(ctx context.Context) (*Room, error) {
	var room Room
	err := c.do(ctx, http.MethodGet, "/rooms/user", nil, &room)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}
