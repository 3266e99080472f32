// Package entities contains core business entities.
package entities

import (
	"sort"
	"strings"
	"time"
)

// UserStats holds participation counters of a user.
type UserStats struct {
	EventsParticipated int
	EventsWon          int
}

// User is a domain representation of a registered student.
type User struct {
	ID        string
	Username  string
	Email     string
	Skills    []string
	Stats     UserStats
	CreatedAt time.Time
}

// NormalizeSkill trims and lower-cases a skill name.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// NormalizeSkills normalizes, drops empty entries and deduplicates. The result is sorted.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	res := make([]string, 0, len(skills))
	for _, s := range skills {
		n := NormalizeSkill(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		res = append(res, n)
	}
	sort.Strings(res)
	return res
}
