package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPosition = errors.New("unknown player position")

// Position is a closed set of football position categories.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// Positions lists every legal position in squad display order.
var Positions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

// ParsePosition is the only way raw input becomes a Position.
func ParsePosition(raw string) (Position, error) {
	candidate := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}
	return candidate, nil
}

func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	default:
		return false
	}
}

func (p Position) String() string {
	return string(p)
}

// Label returns the long-form name used in validation messages.
func (p Position) Label() string {
	switch p {
	case PositionGoalkeeper:
		return "goalkeepers"
	case PositionDefender:
		return "defenders"
	case PositionMidfielder:
		return "midfielders"
	case PositionForward:
		return "forwards"
	default:
		return string(p)
	}
}

// Player is a selectable athlete. Price is stored in tenths of a budget unit
// (75 means 7.5).
type Player struct {
	ID                string
	ClubID            string
	Name              string
	Position          Position
	Price             int64
	TotalPoints       int
	CurrentWeekPoints *int
	ImageURL          string
}

// WeekPoints returns CurrentWeekPoints, treating a missing value as zero.
func (p Player) WeekPoints() int {
	if p.CurrentWeekPoints == nil {
		return 0
	}
	return *p.CurrentWeekPoints
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.ClubID) == "" {
		return fmt.Errorf("player club id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.Position.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownPosition, p.Position)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}
	return nil
}

// FormatPrice renders a tenths price as a decimal string, e.g. 75 -> "7.5".
func FormatPrice(price int64) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = -price
	}
	return fmt.Sprintf("%s%d.%d", sign, price/10, price%10)
}
