package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/mlb-team-timeline/internal/domain/batting"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/franchise"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/player"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/teamseason"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/tenure"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultExtractConcurrency = 8

// FranchiseResolver maps free text to a directory entry.
type FranchiseResolver interface {
	Resolve(ctx context.Context, query string) (franchise.Match, bool, error)
}

type TimelineService struct {
	playerRepo      player.Repository
	battingRepo     batting.Repository
	teamSeasonRepo  teamseason.Repository
	directory       franchise.Lookup
	resolver        FranchiseResolver
	logger          *logging.Logger
	extractParallel int
}

func NewTimelineService(
	playerRepo player.Repository,
	battingRepo batting.Repository,
	teamSeasonRepo teamseason.Repository,
	directory franchise.Lookup,
	resolver FranchiseResolver,
	logger *logging.Logger,
	extractParallel int,
) *TimelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if extractParallel <= 0 {
		extractParallel = DefaultExtractConcurrency
	}

	return &TimelineService{
		playerRepo:      playerRepo,
		battingRepo:     battingRepo,
		teamSeasonRepo:  teamSeasonRepo,
		directory:       directory,
		resolver:        resolver,
		logger:          logger,
		extractParallel: extractParallel,
	}
}

func (s *TimelineService) ListFranchises(ctx context.Context) []franchise.Entry {
	_, span := startUsecaseSpan(ctx, "usecase.TimelineService.ListFranchises")
	defer span.End()

	return s.directory.Entries()
}

// Resolve returns ErrNoMatch for blank input or when nothing reaches the
// resolver threshold.
func (s *TimelineService) Resolve(ctx context.Context, query string) (franchise.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimelineService.Resolve", attribute.String("query", query))
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return franchise.Match{}, fmt.Errorf("%w: query is empty", ErrNoMatch)
	}

	match, found, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return franchise.Match{}, fmt.Errorf("resolve franchise: %w", err)
	}
	if !found {
		return franchise.Match{}, fmt.Errorf("%w: %q", ErrNoMatch, query)
	}

	span.SetAttributes(attribute.String("franchise", match.Code), attribute.Float64("score", match.Score))
	return match, nil
}

// ExtractBlocks returns the tenure blocks of one player. An unknown player
// or one with no batting rows yields an empty slice.
func (s *TimelineService) ExtractBlocks(ctx context.Context, playerID string) ([]tenure.Block, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimelineService.ExtractBlocks", attribute.String("player_id", playerID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player %s: %w", playerID, err)
	}
	if !found {
		s.logger.DebugContext(ctx, "player not in biographical records", "player_id", playerID)
		return []tenure.Block{}, nil
	}

	lookup, err := s.teamSeasonRepo.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("load team season index: %w", err)
	}

	observations, err := s.observations(ctx, lookup, playerID)
	if err != nil {
		return nil, err
	}

	return tenure.Extract(observations), nil
}

// PlayersExclusiveTo returns the active players whose latest season was
// spent with code and no other franchise, in source order.
func (s *TimelineService) PlayersExclusiveTo(ctx context.Context, code string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimelineService.PlayersExclusiveTo", attribute.String("franchise", code))
	defer span.End()

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: franchise code is required", ErrInvalidInput)
	}

	active, err := s.playerRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}
	lookup, err := s.teamSeasonRepo.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("load team season index: %w", err)
	}

	out := make([]player.Player, 0)
	for _, p := range active {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		observations, err := s.observations(ctx, lookup, p.ID)
		if err != nil {
			return nil, err
		}
		_, franchises, ok := tenure.LatestSeason(observations)
		if !ok || len(franchises) != 1 || franchises[0] != code {
			continue
		}
		out = append(out, p)
	}

	span.SetAttributes(attribute.Int("players", len(out)))
	return out, nil
}

// Roster is the exclusive roster of a directory franchise.
type Roster struct {
	Franchise franchise.Entry
	Players   []player.Player
}

// RosterFor rejects codes missing from the directory with ErrNotFound and
// an empty roster with ErrEmptyRoster.
func (s *TimelineService) RosterFor(ctx context.Context, code string) (Roster, error) {
	entry, ok := s.directory.Get(code)
	if !ok {
		return Roster{}, fmt.Errorf("%w: franchise=%s", ErrNotFound, strings.TrimSpace(code))
	}

	players, err := s.PlayersExclusiveTo(ctx, entry.Code)
	if err != nil {
		return Roster{}, err
	}
	if len(players) == 0 {
		return Roster{}, fmt.Errorf("%w: %s", ErrEmptyRoster, entry.Name)
	}

	return Roster{Franchise: entry, Players: players}, nil
}

// BuildTimeline runs the whole pipeline for a free-text team query.
func (s *TimelineService) BuildTimeline(ctx context.Context, query string) (_ Timeline, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimelineService.BuildTimeline", attribute.String("query", query))
	defer func() { endSpan(span, err) }()

	match, err := s.Resolve(ctx, query)
	if err != nil {
		return Timeline{}, err
	}

	players, err := s.PlayersExclusiveTo(ctx, match.Code)
	if err != nil {
		return Timeline{}, err
	}
	if len(players) == 0 {
		return Timeline{}, fmt.Errorf("%w: %s", ErrEmptyRoster, match.Name)
	}

	lookup, err := s.teamSeasonRepo.Index(ctx)
	if err != nil {
		return Timeline{}, fmt.Errorf("load team season index: %w", err)
	}

	mapper := iter.Mapper[player.Player, playerBlocks]{MaxGoroutines: s.extractParallel}
	rows, err := mapper.MapErr(players, func(p *player.Player) (playerBlocks, error) {
		observations, err := s.observations(ctx, lookup, p.ID)
		if err != nil {
			return playerBlocks{}, err
		}
		return playerBlocks{player: *p, blocks: tenure.Extract(observations)}, nil
	})
	if err != nil {
		return Timeline{}, err
	}

	s.logger.InfoContext(ctx, "timeline built",
		"query", query,
		"franchise", match.Code,
		"score", match.Score,
		"players", len(rows),
	)

	return renderTimeline(query, match, rows, s.directory), nil
}

func (s *TimelineService) observations(ctx context.Context, lookup teamseason.Lookup, playerID string) ([]tenure.Observation, error) {
	appearances, err := s.battingRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list batting appearances player=%s: %w", playerID, err)
	}

	observations := tenure.Join(appearances, lookup)
	for _, obs := range observations {
		if !obs.Resolved() {
			s.logger.DebugContext(ctx, "team season missing from index",
				"player_id", playerID,
				"team_id", obs.TeamID,
				"year", obs.Year,
			)
		}
	}

	return observations, nil
}
