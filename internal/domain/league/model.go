package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownVisibility = errors.New("unknown league visibility")
	ErrInviteCodeTaken   = errors.New("league invite code already taken")
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func ParseVisibility(raw string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(strings.TrimSpace(raw))); v {
	case "":
		return VisibilityPublic, nil
	case VisibilityPublic, VisibilityPrivate:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVisibility, raw)
	}
}

// League is a fantasy competition users join with their team. Private leagues
// are joined by invite code only.
type League struct {
	ID          string
	Name        string
	OwnerUserID string
	Visibility  Visibility
	InviteCode  string
	CreatedAt   time.Time
}

func (l League) IsPrivate() bool {
	return l.Visibility == VisibilityPrivate
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if strings.TrimSpace(l.OwnerUserID) == "" {
		return fmt.Errorf("league owner is required")
	}
	switch l.Visibility {
	case VisibilityPublic:
	case VisibilityPrivate:
		if strings.TrimSpace(l.InviteCode) == "" {
			return fmt.Errorf("private league invite code is required")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVisibility, l.Visibility)
	}
	return nil
}

// Member links a user, and the team they compete with, to a league.
type Member struct {
	LeagueID string
	UserID   string
	TeamID   string
	JoinedAt time.Time
}

// Standing is one leaderboard row.
type Standing struct {
	LeagueID string
	UserID   string
	TeamID   string
	TeamName string
	Points   float64
	Rank     int
}
