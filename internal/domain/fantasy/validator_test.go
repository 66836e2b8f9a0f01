package fantasy

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

func TestValidateSquad_ValidFullSquad(t *testing.T) {
	result := ValidateSquad(buildSquad(2, 5, 5, 3), FlexibleRules())
	if !result.IsValid {
		t.Fatalf("expected valid squad, got errors: %v", result.Errors)
	}
	if result.Errors == nil || len(result.Errors) != 0 {
		t.Fatalf("expected empty non-nil error list, got %#v", result.Errors)
	}
}

func TestValidateSquad_BudgetBoundary(t *testing.T) {
	sel := buildSquad(2, 5, 5, 3)
	rules := FlexibleRules()

	rules.Budget = TotalCost(sel)
	if result := ValidateSquad(sel, rules); !result.IsValid {
		t.Fatalf("expected squad on budget to be valid, got %v", result.Errors)
	}
	if remaining := RemainingBudget(sel, rules.Budget); remaining != 0 {
		t.Fatalf("expected zero remaining budget, got %d", remaining)
	}

	rules.Budget = TotalCost(sel) - 1
	result := ValidateSquad(sel, rules)
	if result.IsValid {
		t.Fatalf("expected squad one unit over budget to be invalid")
	}
	want := []string{"squad cost 90.0 exceeds budget 89.9 by 0.1"}
	if !reflect.DeepEqual(result.Errors, want) {
		t.Fatalf("unexpected errors: got=%v want=%v", result.Errors, want)
	}
}

func TestValidateSquad_PositionBands(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantMsg string
	}{
		{name: "one goalkeeper passes", sel: buildSquad(1, 5, 5, 3)},
		{name: "no goalkeeper", sel: buildSquad(0, 5, 5, 3), wantMsg: "must have at least 1 goalkeeper (has 0)"},
		{name: "three goalkeepers", sel: buildSquad(3, 5, 4, 3), wantMsg: "must have at most 2 goalkeepers (has 3)"},
		{name: "three defenders pass", sel: buildSquad(2, 3, 6, 3)},
		{name: "two defenders", sel: buildSquad(2, 2, 6, 3), wantMsg: "must have at least 3 defenders (has 2)"},
		{name: "seven defenders", sel: buildSquad(1, 7, 4, 3), wantMsg: "must have at most 6 defenders (has 7)"},
		{name: "six midfielders pass", sel: buildSquad(2, 4, 6, 3)},
		{name: "two midfielders", sel: buildSquad(2, 6, 2, 3), wantMsg: "must have at least 3 midfielders (has 2)"},
		{name: "seven midfielders", sel: buildSquad(1, 4, 7, 3), wantMsg: "must have at most 6 midfielders (has 7)"},
		{name: "one forward passes", sel: buildSquad(2, 6, 6, 1)},
		{name: "no forward", sel: buildSquad(2, 6, 6, 0), wantMsg: "must have at least 1 forward (has 0)"},
		{name: "four forwards", sel: buildSquad(2, 5, 4, 4), wantMsg: "must have at most 3 forwards (has 4)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSquad(tt.sel, FlexibleRules())
			if tt.wantMsg == "" {
				if !result.IsValid {
					t.Fatalf("expected valid squad, got %v", result.Errors)
				}
				return
			}
			if result.IsValid {
				t.Fatalf("expected invalid squad")
			}
			if !containsMessage(result.Errors, tt.wantMsg) {
				t.Fatalf("expected %q in %v", tt.wantMsg, result.Errors)
			}
		})
	}
}

func TestValidateSquad_StartingXIMustBeEleven(t *testing.T) {
	sel := buildSquad(2, 5, 5, 3)
	sel.Entries[11].IsStartingXI = true

	result := ValidateSquad(sel, FlexibleRules())
	want := []string{"starting XI must have exactly 11 players (has 12)"}
	if !reflect.DeepEqual(result.Errors, want) {
		t.Fatalf("unexpected errors: got=%v want=%v", result.Errors, want)
	}
}

func TestValidateSquad_ReportsEveryViolationInOrder(t *testing.T) {
	sel := buildSquad(0, 2, 5, 3)
	sel.CaptainID = ""
	sel.ViceCaptainID = "ghost"
	rules := FlexibleRules()
	rules.Budget = 500

	result := ValidateForSave(sel, rules, SaveDetails{Name: "  ", LeagueID: ""})
	want := []string{
		"squad must have at least 11 players (has 10)",
		"starting XI must have exactly 11 players (has 10)",
		"squad cost 60.0 exceeds budget 50.0 by 10.0",
		"must have at least 1 goalkeeper (has 0)",
		"must have at least 3 defenders (has 2)",
		"a captain must be selected",
		"vice-captain must be a squad member",
		"team name is required",
		"a league must be selected",
	}
	if !reflect.DeepEqual(result.Errors, want) {
		t.Fatalf("unexpected errors:\n got=%q\nwant=%q", result.Errors, want)
	}
	if result.IsValid {
		t.Fatalf("expected invalid result")
	}
}

func TestValidateSquad_CaptaincyRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Selection)
		wantMsg string
	}{
		{name: "captain missing", mutate: func(s *Selection) { s.CaptainID = "" }, wantMsg: "a captain must be selected"},
		{name: "captain outside squad", mutate: func(s *Selection) { s.CaptainID = "ghost" }, wantMsg: "captain must be a squad member"},
		{name: "vice missing", mutate: func(s *Selection) { s.ViceCaptainID = "" }, wantMsg: "a vice-captain must be selected"},
		{name: "vice equals captain", mutate: func(s *Selection) { s.ViceCaptainID = s.CaptainID }, wantMsg: "captain and vice-captain must be different players"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := buildSquad(2, 5, 5, 3)
			tt.mutate(&sel)
			result := ValidateSquad(sel, FlexibleRules())
			if !reflect.DeepEqual(result.Errors, []string{tt.wantMsg}) {
				t.Fatalf("unexpected errors: got=%v want=[%s]", result.Errors, tt.wantMsg)
			}
		})
	}
}

func TestValidateSquad_FlagsDuplicateEntries(t *testing.T) {
	sel := buildSquad(2, 5, 5, 3)
	sel.Entries[14].Player = sel.Entries[13].Player

	result := ValidateSquad(sel, FlexibleRules())
	if !containsMessage(result.Errors, "player FWD-2 is selected more than once") {
		t.Fatalf("expected duplicate message, got %v", result.Errors)
	}
}

func TestValidateSquad_LegacyPolicy(t *testing.T) {
	rules := LegacyRules()

	if result := ValidateSquad(buildSquad(2, 5, 5, 3), rules); !result.IsValid {
		t.Fatalf("expected legacy 2/5/5/3 squad valid, got %v", result.Errors)
	}

	result := ValidateSquad(buildSquad(1, 5, 5, 3), rules)
	want := []string{
		"squad must have exactly 15 players (has 14)",
		"must have at least 2 goalkeepers (has 1)",
	}
	if !reflect.DeepEqual(result.Errors, want) {
		t.Fatalf("unexpected errors: got=%v want=%v", result.Errors, want)
	}
}

func TestValidateSquad_Idempotent(t *testing.T) {
	sel := buildSquad(3, 2, 7, 4)
	sel.ViceCaptainID = sel.CaptainID

	first := ValidateSquad(sel, FlexibleRules())
	second := ValidateSquad(sel, FlexibleRules())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-validation differs:\n%v\n%v", first.Errors, second.Errors)
	}
}

func TestRulesForPolicy(t *testing.T) {
	rules, err := RulesForPolicy(" Legacy ", 900)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.Policy != PolicyLegacy || rules.Budget != 900 {
		t.Fatalf("unexpected rules: %+v", rules)
	}

	rules, err = RulesForPolicy("", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.Policy != PolicyFlexible || rules.Budget != DefaultBudget {
		t.Fatalf("unexpected default rules: %+v", rules)
	}
	if band, _ := rules.Band(player.PositionDefender); band != (Band{Min: 3, Max: 6}) {
		t.Fatalf("unexpected defender band: %+v", band)
	}

	if _, err := RulesForPolicy("draft", 0); err == nil {
		t.Fatalf("expected unknown policy error")
	}
}
