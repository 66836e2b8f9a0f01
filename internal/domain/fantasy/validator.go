package fantasy

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

// ValidationResult lists every rule violation of a selection.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// SaveDetails carries the fields only checked when persisting.
type SaveDetails struct {
	Name     string
	LeagueID string
}

// ValidateSquad checks a selection for live editing. It never fails; the
// result lists all violations in a fixed order.
func ValidateSquad(sel Selection, rules Rules) ValidationResult {
	errs := squadViolations(sel, rules)
	return newResult(errs)
}

// ValidateForSave extends ValidateSquad with the name and league checks.
func ValidateForSave(sel Selection, rules Rules, details SaveDetails) ValidationResult {
	errs := squadViolations(sel, rules)
	if strings.TrimSpace(details.Name) == "" {
		errs = append(errs, "team name is required")
	}
	if strings.TrimSpace(details.LeagueID) == "" {
		errs = append(errs, "a league must be selected")
	}
	return newResult(errs)
}

func newResult(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func squadViolations(sel Selection, rules Rules) []string {
	var errs []string

	size := len(sel.Entries)
	switch {
	case rules.MinSquadSize == rules.MaxSquadSize && size != rules.MinSquadSize:
		errs = append(errs, fmt.Sprintf("squad must have exactly %d players (has %d)", rules.MinSquadSize, size))
	case size < rules.MinSquadSize:
		errs = append(errs, fmt.Sprintf("squad must have at least %d players (has %d)", rules.MinSquadSize, size))
	case size > rules.MaxSquadSize:
		errs = append(errs, fmt.Sprintf("squad must have at most %d players (has %d)", rules.MaxSquadSize, size))
	}

	for _, id := range duplicateIDs(sel) {
		errs = append(errs, fmt.Sprintf("player %s is selected more than once", id))
	}

	if starters := len(StartingXI(sel)); starters != rules.StartingXISize {
		errs = append(errs, fmt.Sprintf("starting XI must have exactly %d players (has %d)", rules.StartingXISize, starters))
	}

	if remaining := RemainingBudget(sel, rules.Budget); remaining < 0 {
		errs = append(errs, fmt.Sprintf(
			"squad cost %s exceeds budget %s by %s",
			player.FormatPrice(TotalCost(sel)),
			player.FormatPrice(rules.Budget),
			player.FormatPrice(-remaining),
		))
	}

	counts := PositionCounts(sel)
	for _, pos := range player.Positions {
		band, ok := rules.Band(pos)
		if !ok {
			continue
		}
		got := counts[pos]
		switch {
		case got < band.Min:
			errs = append(errs, fmt.Sprintf("must have at least %d %s (has %d)", band.Min, positionNoun(pos, band.Min), got))
		case got > band.Max:
			errs = append(errs, fmt.Sprintf("must have at most %d %s (has %d)", band.Max, positionNoun(pos, band.Max), got))
		}
	}

	switch {
	case sel.CaptainID == "":
		errs = append(errs, "a captain must be selected")
	case !sel.Contains(sel.CaptainID):
		errs = append(errs, "captain must be a squad member")
	}

	switch {
	case sel.ViceCaptainID == "":
		errs = append(errs, "a vice-captain must be selected")
	case !sel.Contains(sel.ViceCaptainID):
		errs = append(errs, "vice-captain must be a squad member")
	case sel.ViceCaptainID == sel.CaptainID:
		errs = append(errs, "captain and vice-captain must be different players")
	}

	return errs
}

func duplicateIDs(sel Selection) []string {
	seen := make(map[string]int, len(sel.Entries))
	var dups []string
	for _, e := range sel.Entries {
		seen[e.Player.ID]++
		if seen[e.Player.ID] == 2 {
			dups = append(dups, e.Player.ID)
		}
	}
	return dups
}

func positionNoun(pos player.Position, n int) string {
	label := pos.Label()
	if n == 1 {
		return strings.TrimSuffix(label, "s")
	}
	return label
}
