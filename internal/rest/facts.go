package rest

import (
	"context"
	"fmt"
	"net/http"
)

type Fact struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type FactGroup struct {
	Name  string `json:"name"`
	Facts []Fact `json:"facts"`
}

func (c *Client) FactGroups(ctx context.Context) ([]FactGroup, error) {
	var groups []FactGroup
	err := c.do(ctx, http.MethodGet, "/groups", nil, &groups)
	return groups, err
}

// ShareFact hands a claimed fact over, making it readable by the winner.
func (c *Client) ShareFact(ctx context.Context, factID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/shared-facts/%d", factID), nil, nil)
}
