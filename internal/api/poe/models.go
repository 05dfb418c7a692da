package poe

// LeagueListResponse is the body of GET /league.
type LeagueListResponse struct {
	Leagues []League `json:"leagues"`
}

// League is one entry of the active league listing.
type League struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Realm string `json:"realm"`
}

// LadderResponse is the body of GET /league/{id}/ladder.
type LadderResponse struct {
	Ladder Ladder `json:"ladder"`
}

type Ladder struct {
	Total   int           `json:"total"`
	Entries []LadderEntry `json:"entries"`
}

// LadderEntry is one ranked entry. Rank and the character's level are
// pointers so an absent field can be told apart from zero.
type LadderEntry struct {
	Rank      *int      `json:"rank"`
	Character Character `json:"character"`
}

type Character struct {
	Name    string `json:"name"`
	Level   *int   `json:"level"`
	Class   string `json:"class"`
	Dead    bool   `json:"dead"`
	Retired bool   `json:"retired"`
}
