package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
)

// RecalcInput selects the season scope and the derived tables to rebuild.
type RecalcInput struct {
	SeasonID   string
	Targets    []string
	MaxWorkers int
}

type RecalcResult struct {
	RoundCount       int                `json:"round_count"`
	TaskCount        int                `json:"task_count"`
	SuccessCount     int                `json:"success_count"`
	FailedCount      int                `json:"failed_count"`
	WorkerCount      int                `json:"worker_count"`
	Tasks            []RecalcTaskResult `json:"tasks"`
	RequestedTargets []string           `json:"requested_targets"`
}

type RecalcTaskResult struct {
	Target     string `json:"target"`
	RoundID    string `json:"round_id,omitempty"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type recalcTarget string

const (
	recalcStatusSuccess = "success"
	recalcStatusFailed  = "failed"

	recalcTargetStandings      recalcTarget = "standings"
	recalcTargetPlayerStats    recalcTarget = "player_stats"
	recalcTargetGoalieStats    recalcTarget = "goalie_stats"
	recalcTargetGoalieBackfill recalcTarget = "goalie_backfill"
)

type recalcTask struct {
	target  recalcTarget
	roundID string
}

// RecalcService is the administrative repair surface. Every derived table is
// a pure recompute, so rebuilding redundantly is always safe; this service
// fans the rebuild work for a season out over a bounded worker pool and
// reports per-task outcomes instead of failing the whole run on first error.
type RecalcService struct {
	seasonRepo     season.Repository
	divisionRepo   division.Repository
	roundRepo      round.Repository
	standings      *StandingsService
	playerStats    *PlayerStatsService
	goalieStats    *GoalieStatsService
	penaltyStats   *PenaltyStatsService
	defaultWorkers int
}

func NewRecalcService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	roundRepo round.Repository,
	standings *StandingsService,
	playerStats *PlayerStatsService,
	goalieStats *GoalieStatsService,
	penaltyStats *PenaltyStatsService,
) *RecalcService {
	return &RecalcService{
		seasonRepo:   seasonRepo,
		divisionRepo: divisionRepo,
		roundRepo:    roundRepo,
		standings:    standings,
		playerStats:  playerStats,
		goalieStats:  goalieStats,
		penaltyStats: penaltyStats,
	}
}

// SetDefaultWorkers sets the pool size used when a run does not ask for one.
func (s *RecalcService) SetDefaultWorkers(n int) {
	s.defaultWorkers = n
}

func (s *RecalcService) Run(ctx context.Context, orgID string, input RecalcInput) (RecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.Run")
	defer span.End()

	seasonID := strings.TrimSpace(input.SeasonID)
	if seasonID == "" {
		return RecalcResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if _, ok, err := s.seasonRepo.GetByID(ctx, orgID, seasonID); err != nil {
		return RecalcResult{}, fmt.Errorf("get season: %w", err)
	} else if !ok {
		return RecalcResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	targets, rawTargets, err := normalizeRecalcTargets(input.Targets)
	if err != nil {
		return RecalcResult{}, err
	}

	rounds, err := s.roundRepo.ListBySeason(ctx, orgID, seasonID)
	if err != nil {
		return RecalcResult{}, fmt.Errorf("list rounds by season: %w", err)
	}

	// Goalie backfill must land before the goalie season recompute reads the
	// game rows, so it runs up front rather than inside the pool.
	tasks := make([]recalcTask, 0, len(rounds)+len(targets))
	backfillRequested := false
	for _, target := range targets {
		switch target {
		case recalcTargetStandings:
			for _, item := range rounds {
				tasks = append(tasks, recalcTask{target: target, roundID: item.ID})
			}
		case recalcTargetGoalieBackfill:
			backfillRequested = true
		default:
			tasks = append(tasks, recalcTask{target: target})
		}
	}

	requestedWorkers := input.MaxWorkers
	if requestedWorkers <= 0 {
		requestedWorkers = s.defaultWorkers
	}
	workerCount := normalizeRecalcWorkerCount(requestedWorkers, len(tasks))
	result := RecalcResult{
		RoundCount:       len(rounds),
		WorkerCount:      workerCount,
		RequestedTargets: rawTargets,
		Tasks:            make([]RecalcTaskResult, 0, len(tasks)+1),
	}

	var successCount atomic.Int32
	var failedCount atomic.Int32

	if backfillRequested {
		row := s.runRecalcTask(ctx, orgID, seasonID, recalcTask{target: recalcTargetGoalieBackfill})
		if row.Status == recalcStatusSuccess {
			successCount.Add(1)
		} else {
			failedCount.Add(1)
		}
		result.Tasks = append(result.Tasks, row)
	}

	result.TaskCount = len(tasks) + len(result.Tasks)
	if len(tasks) > 0 {
		results := make(chan RecalcTaskResult, len(tasks))

		pool, err := ants.NewPool(workerCount)
		if err != nil {
			return RecalcResult{}, fmt.Errorf("create worker pool: %w", err)
		}
		defer pool.Release()

		var workers sync.WaitGroup
		for _, task := range tasks {
			task := task
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()

				row := s.runRecalcTask(ctx, orgID, seasonID, task)
				if row.Status == recalcStatusSuccess {
					successCount.Add(1)
				} else {
					failedCount.Add(1)
				}
				results <- row
			}); err != nil {
				workers.Done()
				return RecalcResult{}, fmt.Errorf("submit task to worker pool: %w", err)
			}
		}
		workers.Wait()
		close(results)

		for row := range results {
			result.Tasks = append(result.Tasks, row)
		}
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].Target != result.Tasks[j].Target {
			return result.Tasks[i].Target < result.Tasks[j].Target
		}
		return result.Tasks[i].RoundID < result.Tasks[j].RoundID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	if s.penaltyStats != nil {
		s.penaltyStats.Invalidate(ctx, orgID, seasonID)
	}

	return result, nil
}

func (s *RecalcService) runRecalcTask(ctx context.Context, orgID, seasonID string, task recalcTask) RecalcTaskResult {
	start := time.Now()
	row := RecalcTaskResult{
		Target:  string(task.target),
		RoundID: task.roundID,
	}

	var records int
	var err error
	switch task.target {
	case recalcTargetStandings:
		err = s.standings.Recalculate(ctx, orgID, task.roundID)
	case recalcTargetPlayerStats:
		err = s.playerStats.RecalculateSeason(ctx, orgID, seasonID)
	case recalcTargetGoalieStats:
		err = s.goalieStats.RecalculateSeason(ctx, orgID, seasonID)
	case recalcTargetGoalieBackfill:
		records, err = s.goalieStats.BackfillGameStats(ctx, orgID, seasonID)
	default:
		err = fmt.Errorf("%w: unsupported target %q", ErrInvalidInput, task.target)
	}

	row.Records = records
	row.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		row.Status = recalcStatusFailed
		row.Message = err.Error()
		return row
	}
	row.Status = recalcStatusSuccess
	return row
}

func normalizeRecalcTargets(raw []string) ([]recalcTarget, []string, error) {
	if len(raw) == 0 {
		// Default to a full rebuild.
		return []recalcTarget{
				recalcTargetStandings,
				recalcTargetGoalieBackfill,
				recalcTargetPlayerStats,
				recalcTargetGoalieStats,
			}, []string{
				string(recalcTargetStandings),
				string(recalcTargetGoalieBackfill),
				string(recalcTargetPlayerStats),
				string(recalcTargetGoalieStats),
			}, nil
	}

	seen := make(map[recalcTarget]struct{}, len(raw))
	targets := make([]recalcTarget, 0, len(raw))
	requested := make([]string, 0, len(raw))
	for _, item := range raw {
		normalized := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(item)), "-", "_")
		if normalized == "" {
			continue
		}
		target, ok := toRecalcTarget(normalized)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unsupported target=%s", ErrInvalidInput, item)
		}
		if _, exists := seen[target]; exists {
			continue
		}
		seen[target] = struct{}{}
		targets = append(targets, target)
		requested = append(requested, normalized)
	}
	if len(targets) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one target is required", ErrInvalidInput)
	}
	return targets, requested, nil
}

func toRecalcTarget(value string) (recalcTarget, bool) {
	switch value {
	case "standings", "standing":
		return recalcTargetStandings, true
	case "player_stats", "players":
		return recalcTargetPlayerStats, true
	case "goalie_stats", "goalies":
		return recalcTargetGoalieStats, true
	case "goalie_backfill", "backfill":
		return recalcTargetGoalieBackfill, true
	default:
		return "", false
	}
}

func normalizeRecalcWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
