package internal

import "time"

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

const (
	PositionGoalkeeper = "goalkeeper"
	PositionOutfield   = "outfield"
)

type Player struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"` // goalkeeper|outfield
	Price       int    `json:"price"`
	TotalPoints int    `json:"total_points"`
}

type Team struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	UserID      int    `json:"user_id"`
	TotalPoints int    `json:"total_points"`
}

// TeamPlayer is a roster entry: a player plus their slot on this team.
type TeamPlayer struct {
	Player
	IsGoalkeeper bool `json:"is_goalkeeper"`
}

type Matchday struct {
	ID     int    `json:"id"`
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type PlayerBonus struct {
	PlayerID   int    `json:"player_id"`
	MatchdayID int    `json:"matchday_id"`
	Points     int    `json:"points"`
	PlayerName string `json:"player_name,omitempty"`
	Position   string `json:"position,omitempty"`
}

type CalendarMatch struct {
	ID          int       `json:"id"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	MatchDate   time.Time `json:"match_date"`
	Venue       string    `json:"venue"`
	HomeScore   *int      `json:"home_score"`
	AwayScore   *int      `json:"away_score"`
	GroupNumber int       `json:"group_number"`
}

type LeaderboardEntry struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	TotalPoints   int    `json:"total_points"`
	OwnerUsername string `json:"owner_username"`
}
