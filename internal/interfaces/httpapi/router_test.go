package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/hanakm/rinkleague/internal/infrastructure/repository/memory"
	"github.com/hanakm/rinkleague/internal/platform/cache"
	"github.com/hanakm/rinkleague/internal/platform/id"
	"github.com/hanakm/rinkleague/internal/platform/logging"
	"github.com/hanakm/rinkleague/internal/usecase"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons())
	divisionRepo := memory.NewDivisionRepository(memory.SeedDivisions())
	roundRepo := memory.NewRoundRepository(memory.SeedRounds(), memory.SeedDivisions())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	contractRepo := memory.NewContractRepository(memory.SeedContracts())
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	eventRepo := memory.NewEventRepository(nil)
	lineupRepo := memory.NewLineupRepository(nil)
	suspensionRepo := memory.NewSuspensionRepository(nil)
	standingRepo := memory.NewStandingRepository()
	bonusRepo := memory.NewBonusPointRepository(nil)
	playerStatRepo := memory.NewPlayerStatRepository()
	goalieStatRepo := memory.NewGoalieStatRepository()
	goalieGameRepo := memory.NewGoalieGameStatRepository()

	idGen := id.NewRandomGenerator()
	logger := logging.NewNop()

	standings := usecase.NewStandingsService(roundRepo, gameRepo, standingRepo, bonusRepo)
	playerStats := usecase.NewPlayerStatsService(seasonRepo, roundRepo, gameRepo, eventRepo, lineupRepo, contractRepo, playerStatRepo)
	goalieStats := usecase.NewGoalieStatsService(seasonRepo, divisionRepo, roundRepo, gameRepo, eventRepo, lineupRepo, goalieGameRepo, goalieStatRepo)
	penaltyStats := usecase.NewPenaltyStatsService(seasonRepo, roundRepo, gameRepo, eventRepo, cache.NewStore(time.Minute))
	gameService := usecase.NewGameService(roundRepo, divisionRepo, gameRepo, eventRepo, lineupRepo, suspensionRepo, playerRepo, standings, playerStats, goalieStats, penaltyStats, idGen, logger)
	roundService := usecase.NewRoundService(roundRepo, divisionRepo, standings, playerStats, goalieStats, penaltyStats)
	scheduleService := usecase.NewScheduleService(roundRepo, teamRepo, gameRepo, idGen)
	bonusService := usecase.NewBonusPointService(roundRepo, bonusRepo, standings, idGen)
	recalcService := usecase.NewRecalcService(seasonRepo, divisionRepo, roundRepo, standings, playerStats, goalieStats, penaltyStats)

	handler := NewHandler(standings, playerStats, goalieStats, penaltyStats, gameService, roundService, scheduleService, bonusService, recalcService, logger)
	return NewRouter(handler, logger, false, nil, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_GetRound(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{"X-Org-ID": memory.SeedOrgID}

	rec := doRequest(t, router, http.MethodGet, "/v1/rounds/"+memory.SeedRoundID, "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if got, _ := data["id"].(string); got != memory.SeedRoundID {
		t.Fatalf("expected round id %s, got %v", memory.SeedRoundID, data["id"])
	}
}

func TestRouter_GetUnknownRoundIsNotFound(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{"X-Org-ID": memory.SeedOrgID}

	rec := doRequest(t, router, http.MethodGet, "/v1/rounds/no-such-round", "", headers)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_RecalculateDivisionStandings(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{"X-Org-ID": memory.SeedOrgID}

	rec := doRequest(t, router, http.MethodPost, "/v1/divisions/"+memory.SeedDivisionID+"/standings/recalculate", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("expected status ok, got %v", data["status"])
	}
}

func TestRouter_MissingOrgHeaderIsUnauthorized(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/rounds/"+memory.SeedRoundID+"/standings", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_CompleteWithoutLineupsConflicts(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{"X-Org-ID": memory.SeedOrgID}

	rec := doRequest(t, router, http.MethodPost, "/v1/games/game-01/complete", "", headers)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "FAILED_PRECONDITION" {
		t.Fatalf("expected FAILED_PRECONDITION, got %v", errorObj["status"])
	}
}

func TestRouter_RecalculateJob(t *testing.T) {
	router := newTestRouter(t)

	noToken := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/recalculate",
		`{"seasonId":"`+memory.SeedSeasonID+`"}`,
		map[string]string{"X-Org-ID": memory.SeedOrgID},
	)
	if noToken.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", noToken.Code)
	}

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/recalculate",
		`{"seasonId":"`+memory.SeedSeasonID+`"}`,
		map[string]string{
			"X-Org-ID":             memory.SeedOrgID,
			"X-Internal-Job-Token": testJobToken,
		},
	)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if failed, _ := data["failed_count"].(float64); failed != 0 {
		t.Fatalf("expected no failed tasks, got %v", data["failed_count"])
	}
	if tasks, _ := data["task_count"].(float64); tasks == 0 {
		t.Fatalf("expected at least one task, got %v", data["task_count"])
	}
}
