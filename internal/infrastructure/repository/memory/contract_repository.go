package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanakm/rinkleague/internal/domain/contract"
)

type ContractRepository struct {
	mu    sync.RWMutex
	items map[string]contract.Contract
}

func NewContractRepository(contracts []contract.Contract) *ContractRepository {
	items := make(map[string]contract.Contract, len(contracts))
	for _, item := range contracts {
		items[orgKey(item.OrgID, item.ID)] = item
	}
	return &ContractRepository{items: items}
}

func (r *ContractRepository) GetByPlayerAndTeam(_ context.Context, orgID, playerID, teamID string) (contract.Contract, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.OrgID == orgID && item.PlayerID == playerID && item.TeamID == teamID {
			return item, true, nil
		}
	}
	return contract.Contract{}, false, nil
}

func (r *ContractRepository) ListByTeams(_ context.Context, orgID string, teamIDs []string) ([]contract.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(teamIDs))
	for _, teamID := range teamIDs {
		wanted[teamID] = struct{}{}
	}

	out := make([]contract.Contract, 0)
	for _, item := range r.items {
		if item.OrgID != orgID {
			continue
		}
		if _, ok := wanted[item.TeamID]; ok {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
