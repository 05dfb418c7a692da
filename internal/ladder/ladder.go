package ladder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"poe2-ladder-tracker/internal/api/poe"
)

// unknownValue stands in for a level or rank the API did not report.
const unknownValue = "Unknown"

const debugDumpPath = "ladder_debug.json"

// Status of a ladder character beyond being alive and climbing.
type Status string

const (
	StatusNone    Status = ""
	StatusDead    Status = "DEAD"
	StatusRetired Status = "RETIRED"
)

// CharacterRank is the result of one ladder search. Level and Rank hold the
// reported numbers, or "Unknown" when the API omitted the field.
type CharacterRank struct {
	Level  string
	Rank   string
	Status Status
}

var (
	// ErrNotFound means the ladder had no entry for the character.
	ErrNotFound = errors.New("character not found in ladder entries")
	// ErrRateLimited means the provider returned 429 for this cycle.
	ErrRateLimited = errors.New("rate limited by the API")
	// ErrLeagueNotFound means the ladder request 404ed, most likely because
	// the league id was invalid.
	ErrLeagueNotFound = errors.New("league not found")
)

// API is the slice of the PoE client the service needs.
type API interface {
	ListLeagues(ctx context.Context) ([]poe.League, error)
	GetLadder(ctx context.Context, leagueID string) (*poe.Ladder, []byte, error)
}

// Service resolves league names and searches ladders.
type Service struct {
	api   API
	debug bool
}

func NewService(api API, debug bool) *Service {
	return &Service{api: api, debug: debug}
}

// ResolveLeagueID resolves a league display name to the API's league id by
// scanning the active league listing for an exact name match. When the
// listing call fails or nothing matches, the display name itself is returned
// so the cycle can continue; an invalid id surfaces as a 404 on the ladder
// fetch.
func (s *Service) ResolveLeagueID(ctx context.Context, name string) string {
	leagues, err := s.api.ListLeagues(ctx)
	if err != nil {
		slog.Error("Failed to fetch league listing, using league name as id", "league", name, "error", err)
		return name
	}

	names := make([]string, 0, len(leagues))
	for _, league := range leagues {
		if league.Name == name {
			return league.ID
		}
		names = append(names, league.Name)
	}

	slog.Error("League not found in active leagues, using league name as id", "league", name)
	if suggestion := closestLeague(name, names); suggestion != "" {
		slog.Info("Closest active league name", "league", suggestion)
	}
	return name
}

// closestLeague returns the active league name nearest to the requested one,
// or "" when nothing comes close enough to be a plausible typo.
func closestLeague(name string, names []string) string {
	best := ""
	bestDistance := len(name)/2 + 1
	for _, candidate := range names {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(candidate))
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}

// FindCharacter fetches the ladder for the league and scans it in listing
// order for an exact character name match.
func (s *Service) FindCharacter(ctx context.Context, leagueID, characterName string) (*CharacterRank, error) {
	ladder, raw, err := s.api.GetLadder(ctx, leagueID)
	if err != nil {
		return nil, classifyLadderError(err)
	}

	if s.debug {
		s.dumpLadder(raw)
	}

	if len(ladder.Entries) == 0 {
		slog.Warn("No entries found in ladder response")
		return nil, ErrNotFound
	}

	for _, entry := range ladder.Entries {
		if entry.Character.Name != characterName {
			continue
		}

		result := &CharacterRank{
			Level:  formatNumber(entry.Character.Level),
			Rank:   formatNumber(entry.Rank),
			Status: deriveStatus(entry.Character),
		}

		slog.Info("Found character",
			"character", characterName,
			"rank", result.Rank,
			"level", result.Level,
			"status", result.Status)
		return result, nil
	}

	slog.Warn("Character not found in ladder entries", "character", characterName)
	return nil, ErrNotFound
}

func classifyLadderError(err error) error {
	var statusErr *poe.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	switch statusErr.StatusCode {
	case http.StatusTooManyRequests:
		slog.Warn("Rate limited", "retry_after", statusErr.RetryAfter)
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrLeagueNotFound, err)
	}
	return err
}

func deriveStatus(c poe.Character) Status {
	if c.Dead {
		return StatusDead
	}
	if c.Retired {
		return StatusRetired
	}
	return StatusNone
}

func formatNumber(n *int) string {
	if n == nil {
		return unknownValue
	}
	return strconv.Itoa(*n)
}

func (s *Service) dumpLadder(raw []byte) {
	if err := os.WriteFile(debugDumpPath, raw, 0o644); err != nil {
		slog.Error("Failed to write ladder debug dump", "path", debugDumpPath, "error", err)
		return
	}
	slog.Debug("Saved full ladder JSON for analysis", "path", debugDumpPath)
}
