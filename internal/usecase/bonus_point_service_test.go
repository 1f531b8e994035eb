package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hanakm/rinkleague/internal/domain/standing"
)

func teamPoints(t *testing.T, env *testEnv, teamID string) (int, int) {
	t.Helper()
	rows, err := env.standings.ListByRound(context.Background(), testOrgID, testRoundID)
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	for _, row := range rows {
		if row.TeamID == teamID {
			return row.BonusPoints, row.TotalPoints
		}
	}
	t.Fatalf("no standing row for %s: %+v", teamID, rows)
	return 0, 0
}

func TestBonusPointService_LifecycleRescoresRound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())
	env.reportGame(t, "game-1", 2, 0)

	created, err := env.bonus.Create(context.Background(), testOrgID, standing.BonusPoint{
		RoundID: testRoundID,
		TeamID:  "team-b",
		Points:  3,
		Reason:  "forfeit compensation",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create must assign an id")
	}
	if bonus, total := teamPoints(t, env, "team-b"); bonus != 3 || total != 3 {
		t.Fatalf("bonus not applied: bonus=%d total=%d", bonus, total)
	}

	created.Points = -1
	created.Reason = "adjusted"
	if _, err := env.bonus.Update(context.Background(), testOrgID, created); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if bonus, total := teamPoints(t, env, "team-b"); bonus != -1 || total != -1 {
		t.Fatalf("update not applied: bonus=%d total=%d", bonus, total)
	}

	if err := env.bonus.Delete(context.Background(), testOrgID, created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if bonus, total := teamPoints(t, env, "team-b"); bonus != 0 || total != 0 {
		t.Fatalf("delete not applied: bonus=%d total=%d", bonus, total)
	}
}

func TestBonusPointService_CreateValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, defaultFixtures())

	if _, err := env.bonus.Create(context.Background(), testOrgID, standing.BonusPoint{
		RoundID: "missing", TeamID: "team-a", Points: 1,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown round, got %v", err)
	}

	if _, err := env.bonus.Create(context.Background(), testOrgID, standing.BonusPoint{
		RoundID: testRoundID, Points: 1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing team id, got %v", err)
	}
}
