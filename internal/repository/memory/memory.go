// Package memory implements the repository in process memory.
//
// Transitions of teams belonging to one event are serialized by a mutex per
// event id. Teams of different events never contend. The structural maps are
// guarded by a separate RWMutex held only for short copy-in/copy-out sections.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"team-formation/internal/entities"

	"go.uber.org/zap"
)

type memberKey struct {
	eventID string
	userID  string
}

// Memory is an in-process repository.
type Memory struct {
	log *zap.SugaredLogger

	mu       sync.RWMutex
	users    map[string]entities.User
	events   map[string]entities.Event
	teams    map[string]entities.Team
	byEvent  map[string]map[string]struct{}
	byMember map[string]map[string]struct{}
	invited  map[string]map[string]struct{}
	memberOf map[memberKey]string

	eventLocks sync.Map
}

// New creates an empty in-memory repository.
func New(log *zap.SugaredLogger) *Memory {
	return &Memory{
		log:      log.Named("repo.memory"),
		users:    make(map[string]entities.User),
		events:   make(map[string]entities.Event),
		teams:    make(map[string]entities.Team),
		byEvent:  make(map[string]map[string]struct{}),
		byMember: make(map[string]map[string]struct{}),
		invited:  make(map[string]map[string]struct{}),
		memberOf: make(map[memberKey]string),
	}
}

// OnStart is a no-op.
func (m *Memory) OnStart(_ context.Context) error {
	m.log.Infow("memory repository ready")
	return nil
}

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error { return nil }

// PutUser inserts or replaces a user record.
func (m *Memory) PutUser(u entities.User) {
	u.Skills = entities.NormalizeSkills(u.Skills)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	m.users[u.ID] = u
	m.mu.Unlock()
}

// PutEvent inserts or replaces an event record.
func (m *Memory) PutEvent(e entities.Event) {
	m.mu.Lock()
	m.events[e.ID] = e
	m.mu.Unlock()
}

type seedFile struct {
	Users []struct {
		ID                 string   `json:"id"`
		Username           string   `json:"username"`
		Email              string   `json:"email"`
		Skills             []string `json:"skills"`
		EventsParticipated int      `json:"events_participated"`
		EventsWon          int      `json:"events_won"`
	} `json:"users"`
	Events []struct {
		ID          string `json:"id"`
		TeamSizeMin int    `json:"team_size_min"`
		TeamSizeMax int    `json:"team_size_max"`
	} `json:"events"`
}

// LoadSeed fills the user directory and events from a JSON file.
func (m *Memory) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}
	for _, e := range seed.Events {
		size := entities.TeamSize{Min: e.TeamSizeMin, Max: e.TeamSizeMax}
		if err := size.Validate(); err != nil {
			return fmt.Errorf("event %s: team size %d..%d: %w", e.ID, size.Min, size.Max, err)
		}
		m.PutEvent(entities.Event{ID: e.ID, TeamSize: size})
	}
	for _, u := range seed.Users {
		m.PutUser(entities.User{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Skills:   u.Skills,
			Stats:    entities.UserStats{EventsParticipated: u.EventsParticipated, EventsWon: u.EventsWon},
		})
	}
	m.log.Infow("seed loaded", "path", path, "users", len(seed.Users), "events", len(seed.Events))
	return nil
}

// index adds teamID to the set under key. Callers hold m.mu.
func index(sets map[string]map[string]struct{}, key, teamID string) {
	if sets[key] == nil {
		sets[key] = make(map[string]struct{})
	}
	sets[key][teamID] = struct{}{}
}

// unindex removes teamID from the set under key. Callers hold m.mu.
func unindex(sets map[string]map[string]struct{}, key, teamID string) {
	delete(sets[key], teamID)
	if len(sets[key]) == 0 {
		delete(sets, key)
	}
}

func (m *Memory) lockEvent(eventID string) func() {
	v, _ := m.eventLocks.LoadOrStore(eventID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func sortTeams(teams []entities.Team) {
	sort.Slice(teams, func(i, j int) bool {
		if !teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].CreatedAt.Before(teams[j].CreatedAt)
		}
		return teams[i].ID < teams[j].ID
	})
}
