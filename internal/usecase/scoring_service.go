package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultScoringWorkers = 4

type RecordPerformanceInput struct {
	PlayerID      string
	MatchID       string
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	CleanSheet    bool
	MinutesPlayed int
}

func (in RecordPerformanceInput) performance() scoring.Performance {
	return scoring.Performance{
		Goals:         in.Goals,
		Assists:       in.Assists,
		YellowCards:   in.YellowCards,
		RedCards:      in.RedCards,
		CleanSheet:    in.CleanSheet,
		MinutesPlayed: in.MinutesPlayed,
	}
}

type PerformanceResult struct {
	Record        scoring.Record
	Breakdown     []scoring.LineItem
	TeamsCredited int
}

type PointsPreview struct {
	Position  player.Position
	Breakdown []scoring.LineItem
	Points    int
}

const (
	BatchStatusScored = "scored"
	BatchStatusFailed = "failed"
)

type BatchRow struct {
	PlayerID      string
	Status        string
	Points        int
	TeamsCredited int
	Message       string
}

type BatchResult struct {
	MatchID     string
	Rows        []BatchRow
	ScoredCount int
	FailedCount int
}

// ScoringService turns admin-entered performances into stored records and
// accrues their points into player and team totals.
type ScoringService struct {
	matchRepo   match.Repository
	playerRepo  player.Repository
	scoringRepo scoring.Repository
	teamRepo    fantasy.Repository
	rules       scoring.Rules
	workers     int
	logger      *logging.Logger
	now         func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	scoringRepo scoring.Repository,
	teamRepo fantasy.Repository,
	rules scoring.Rules,
	workers int,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultScoringWorkers
	}

	return &ScoringService{
		matchRepo:   matchRepo,
		playerRepo:  playerRepo,
		scoringRepo: scoringRepo,
		teamRepo:    teamRepo,
		rules:       rules,
		workers:     workers,
		logger:      logger,
		now:         time.Now,
	}
}

// PreviewPoints scores a stat line without storing it.
func (s *ScoringService) PreviewPoints(rawPosition string, perf scoring.Performance) (PointsPreview, error) {
	position, err := player.ParsePosition(rawPosition)
	if err != nil {
		return PointsPreview{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	items, err := s.rules.Breakdown(position, perf)
	if err != nil {
		return PointsPreview{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return PointsPreview{Position: position, Breakdown: items, Points: scoring.Sum(items)}, nil
}

func (s *ScoringService) RecordPerformance(ctx context.Context, input RecordPerformanceInput) (PerformanceResult, error) {
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)

	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordPerformance",
		attribute.String("match_id", input.MatchID),
		attribute.String("player_id", input.PlayerID),
	)
	defer span.End()

	m, err := s.finishedMatch(ctx, input.MatchID)
	if err != nil {
		return PerformanceResult{}, recordSpanError(span, err)
	}
	prepared, err := s.prepare(ctx, m, input)
	if err != nil {
		return PerformanceResult{}, recordSpanError(span, err)
	}
	credited, err := s.apply(ctx, prepared.Record)
	if err != nil {
		return PerformanceResult{}, recordSpanError(span, err)
	}
	prepared.TeamsCredited = credited

	s.logger.InfoContext(ctx, "performance scored",
		"match_id", m.ID,
		"player_id", prepared.Record.PlayerID,
		"points", prepared.Record.Points,
		"teams_credited", credited,
	)
	return prepared, nil
}

// RecordMatchPerformances validates and scores a batch concurrently, then
// stores the rows one by one. A failing row does not stop the others.
func (s *ScoringService) RecordMatchPerformances(ctx context.Context, matchID string, inputs []RecordPerformanceInput) (BatchResult, error) {
	matchID = strings.TrimSpace(matchID)
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordMatchPerformances",
		attribute.String("match_id", matchID),
		attribute.Int("rows", len(inputs)),
	)
	defer span.End()

	if len(inputs) == 0 {
		return BatchResult{}, recordSpanError(span, fmt.Errorf("%w: at least one performance is required", ErrInvalidInput))
	}
	m, err := s.finishedMatch(ctx, matchID)
	if err != nil {
		return BatchResult{}, recordSpanError(span, err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return BatchResult{}, recordSpanError(span, fmt.Errorf("create worker pool: %w", err))
	}
	defer pool.Release()

	prepared := make([]PerformanceResult, len(inputs))
	failures := make([]error, len(inputs))

	err = runTasks(pool, len(inputs), func(i int) {
		input := inputs[i]
		input.MatchID = m.ID
		input.PlayerID = strings.TrimSpace(input.PlayerID)
		prepared[i], failures[i] = s.prepare(ctx, m, input)
	})
	if err != nil {
		return BatchResult{}, recordSpanError(span, err)
	}

	result := BatchResult{MatchID: m.ID, Rows: make([]BatchRow, 0, len(inputs))}
	for i, input := range inputs {
		row := BatchRow{PlayerID: strings.TrimSpace(input.PlayerID)}
		err := failures[i]
		if err == nil {
			row.TeamsCredited, err = s.apply(ctx, prepared[i].Record)
		}
		if err != nil {
			row.Status = BatchStatusFailed
			row.Message = err.Error()
			result.FailedCount++
			result.Rows = append(result.Rows, row)
			continue
		}
		row.Status = BatchStatusScored
		row.Points = prepared[i].Record.Points
		result.ScoredCount++
		result.Rows = append(result.Rows, row)
	}

	s.logger.InfoContext(ctx, "match performances scored",
		"match_id", m.ID,
		"scored", result.ScoredCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

// ResetCurrentWeek clears every player's current-week points at round
// rollover. Stored team totals are untouched.
func (s *ScoringService) ResetCurrentWeek(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ResetCurrentWeek")
	defer span.End()

	if err := s.playerRepo.ResetWeekPoints(ctx); err != nil {
		return recordSpanError(span, fmt.Errorf("reset week points: %w", err))
	}
	s.logger.InfoContext(ctx, "current week points reset")
	return nil
}

func (s *ScoringService) finishedMatch(ctx context.Context, matchID string) (match.Match, error) {
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	m, exists, err := s.matchRepo.GetMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.IsFinished() {
		return match.Match{}, fmt.Errorf("%w: match %s is not finished", ErrConflict, matchID)
	}
	return m, nil
}

// prepare resolves the player and computes points without writing.
func (s *ScoringService) prepare(ctx context.Context, m match.Match, input RecordPerformanceInput) (PerformanceResult, error) {
	if input.PlayerID == "" {
		return PerformanceResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return PerformanceResult{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PerformanceResult{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}
	if !m.Involves(p.ClubID) {
		return PerformanceResult{}, fmt.Errorf("%w: player %s did not play in match %s", ErrInvalidInput, p.ID, m.ID)
	}

	perf := input.performance()
	items, err := s.rules.Breakdown(p.Position, perf)
	if err != nil {
		return PerformanceResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return PerformanceResult{
		Record: scoring.Record{
			PlayerID:    p.ID,
			MatchID:     m.ID,
			Performance: perf,
			Points:      scoring.Sum(items),
			CreatedAt:   s.now().UTC(),
		},
		Breakdown: items,
	}, nil
}

// apply stores the record and accrues its points to the player and to
// every team starting them, as one repository unit of work. A failure
// leaves nothing behind, so the same row can be retried.
func (s *ScoringService) apply(ctx context.Context, record scoring.Record) (int, error) {
	links, err := s.teamRepo.ListLinksByPlayer(ctx, record.PlayerID)
	if err != nil {
		return 0, fmt.Errorf("list teams holding player: %w", err)
	}
	credits := make([]scoring.TeamCredit, 0, len(links))
	for _, link := range links {
		multiplier := link.Multiplier()
		if multiplier == 0 {
			continue
		}
		credits = append(credits, scoring.TeamCredit{TeamID: link.TeamID, Points: float64(record.Points) * multiplier})
	}

	if err := s.scoringRepo.RecordAndAccrue(ctx, record, credits); err != nil {
		if errors.Is(err, scoring.ErrAlreadyScored) {
			return 0, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return 0, fmt.Errorf("record and accrue performance: %w", err)
	}
	return len(credits), nil
}

type taskSubmitter interface {
	Submit(task func()) error
}

// runTasks submits task(0..n-1) and waits for every submitted task, even
// when a later Submit fails.
func runTasks(pool taskSubmitter, n int, task func(i int)) error {
	var workers sync.WaitGroup
	defer workers.Wait()
	for i := range n {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task(i)
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	return nil
}
