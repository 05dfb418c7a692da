package poe

import (
	"context"
	"fmt"
	"net/url"
)

const realm = "poe2"

// API exposes the two league endpoints the tracker consumes.
type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// ListLeagues fetches the active league listing for the realm.
func (a *API) ListLeagues(ctx context.Context) ([]League, error) {
	var resp LeagueListResponse
	params := map[string]string{"realm": realm}

	if err := a.client.Get(ctx, "/league", params, &resp, nil); err != nil {
		return nil, fmt.Errorf("fetching leagues: %w", err)
	}

	return resp.Leagues, nil
}

// GetLadder fetches the first page of the ladder for the given league id,
// capped at 200 entries. The raw response body is returned alongside the
// decoded ladder for the debug dump.
func (a *API) GetLadder(ctx context.Context, leagueID string) (*Ladder, []byte, error) {
	var resp LadderResponse
	var raw []byte
	endpoint := fmt.Sprintf("/league/%s/ladder", url.PathEscape(leagueID))
	params := map[string]string{
		"realm": realm,
		"limit": "200",
	}

	if err := a.client.Get(ctx, endpoint, params, &resp, &raw); err != nil {
		return nil, nil, fmt.Errorf("fetching ladder: %w", err)
	}

	return &resp.Ladder, raw, nil
}
