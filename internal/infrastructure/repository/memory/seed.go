package memory

import (
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/club"
	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

const (
	ClubIDAlJaish   = "spl-jaish"
	ClubIDAlWahda   = "spl-wahda"
	ClubIDTishreen  = "spl-tishreen"
	ClubIDAlKaramah = "spl-karamah"
	ClubIDHutteen   = "spl-hutteen"
	ClubIDAlIttihad = "spl-ittihad"

	SeasonIDCurrent = "spl-2026-27"
	LeagueIDOverall = "league-spl-overall"
)

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDAlJaish, Name: "Al-Jaish", ShortName: "JSH", City: "Damascus"},
		{ID: ClubIDAlWahda, Name: "Al-Wahda", ShortName: "WHD", City: "Damascus"},
		{ID: ClubIDTishreen, Name: "Tishreen", ShortName: "TSH", City: "Latakia"},
		{ID: ClubIDAlKaramah, Name: "Al-Karamah", ShortName: "KRM", City: "Homs"},
		{ID: ClubIDHutteen, Name: "Hutteen", ShortName: "HUT", City: "Latakia"},
		{ID: ClubIDAlIttihad, Name: "Al-Ittihad", ShortName: "ITT", City: "Aleppo"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "spl-gk-01", ClubID: ClubIDAlJaish, Name: "Yazan Haddad", Position: player.PositionGoalkeeper, Price: 55},
		{ID: "spl-gk-02", ClubID: ClubIDAlWahda, Name: "Omar Khatib", Position: player.PositionGoalkeeper, Price: 50},
		{ID: "spl-gk-03", ClubID: ClubIDTishreen, Name: "Karim Sabbagh", Position: player.PositionGoalkeeper, Price: 45},

		{ID: "spl-def-01", ClubID: ClubIDAlJaish, Name: "Fadi Nasser", Position: player.PositionDefender, Price: 60},
		{ID: "spl-def-02", ClubID: ClubIDAlKaramah, Name: "Hadi Rifai", Position: player.PositionDefender, Price: 55},
		{ID: "spl-def-03", ClubID: ClubIDHutteen, Name: "Majd Hamwi", Position: player.PositionDefender, Price: 50},
		{ID: "spl-def-04", ClubID: ClubIDAlIttihad, Name: "Samer Qassab", Position: player.PositionDefender, Price: 55},
		{ID: "spl-def-05", ClubID: ClubIDAlWahda, Name: "Tarek Ajjan", Position: player.PositionDefender, Price: 45},
		{ID: "spl-def-06", ClubID: ClubIDTishreen, Name: "Rami Dakkak", Position: player.PositionDefender, Price: 50},
		{ID: "spl-def-07", ClubID: ClubIDAlKaramah, Name: "Wael Shami", Position: player.PositionDefender, Price: 45},

		{ID: "spl-mid-01", ClubID: ClubIDAlIttihad, Name: "Mahmoud Halabi", Position: player.PositionMidfielder, Price: 85},
		{ID: "spl-mid-02", ClubID: ClubIDAlJaish, Name: "Ziad Kurdi", Position: player.PositionMidfielder, Price: 75},
		{ID: "spl-mid-03", ClubID: ClubIDAlWahda, Name: "Nour Asaad", Position: player.PositionMidfielder, Price: 70},
		{ID: "spl-mid-04", ClubID: ClubIDAlKaramah, Name: "Bilal Homsi", Position: player.PositionMidfielder, Price: 65},
		{ID: "spl-mid-05", ClubID: ClubIDHutteen, Name: "Iyad Jabri", Position: player.PositionMidfielder, Price: 60},
		{ID: "spl-mid-06", ClubID: ClubIDTishreen, Name: "Alaa Rahmeh", Position: player.PositionMidfielder, Price: 55},
		{ID: "spl-mid-07", ClubID: ClubIDAlIttihad, Name: "Jad Tabbaa", Position: player.PositionMidfielder, Price: 50},

		{ID: "spl-fwd-01", ClubID: ClubIDAlKaramah, Name: "Firas Saleh", Position: player.PositionForward, Price: 95},
		{ID: "spl-fwd-02", ClubID: ClubIDAlJaish, Name: "Hamza Zein", Position: player.PositionForward, Price: 90},
		{ID: "spl-fwd-03", ClubID: ClubIDAlIttihad, Name: "Anas Mardini", Position: player.PositionForward, Price: 80},
		{ID: "spl-fwd-04", ClubID: ClubIDTishreen, Name: "Kinan Darwish", Position: player.PositionForward, Price: 70},
		{ID: "spl-fwd-05", ClubID: ClubIDHutteen, Name: "Louay Idlibi", Position: player.PositionForward, Price: 60},
	}
}

func SeedSeasons() []match.Season {
	return []match.Season{
		{ID: SeasonIDCurrent, Name: "Syrian Premier League 2026/27", IsActive: true},
	}
}

func SeedMatches() []match.Match {
	round1 := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
	return []match.Match{
		{ID: "spl-r1-01", SeasonID: SeasonIDCurrent, Round: 1, HomeClubID: ClubIDAlJaish, AwayClubID: ClubIDAlWahda, KickoffAt: round1, Status: match.StatusScheduled},
		{ID: "spl-r1-02", SeasonID: SeasonIDCurrent, Round: 1, HomeClubID: ClubIDTishreen, AwayClubID: ClubIDHutteen, KickoffAt: round1.Add(3 * time.Hour), Status: match.StatusScheduled},
		{ID: "spl-r1-03", SeasonID: SeasonIDCurrent, Round: 1, HomeClubID: ClubIDAlKaramah, AwayClubID: ClubIDAlIttihad, KickoffAt: round1.Add(24 * time.Hour), Status: match.StatusScheduled},
	}
}

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:          LeagueIDOverall,
			Name:        "SPL Overall",
			OwnerUserID: "system",
			Visibility:  league.VisibilityPublic,
			CreatedAt:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
