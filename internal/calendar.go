package internal

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListCalendarMatches is public: the fixture list is display-only and has no
// bearing on scoring.
func ListCalendarMatches(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := psql.Select("id", "home_team", "away_team", "match_date", "venue",
			"home_score", "away_score", "group_number").
			From("calendar_matches").
			OrderBy("match_date ASC", "group_number ASC", "id ASC")
		rows, err := qQuery(context.Background(), db, q)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer rows.Close()

		out := []CalendarMatch{}
		for rows.Next() {
			var m CalendarMatch
			_ = rows.Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.MatchDate, &m.Venue,
				&m.HomeScore, &m.AwayScore, &m.GroupNumber)
			out = append(out, m)
		}
		c.JSON(200, out)
	}
}

func CreateCalendarMatch(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		var req struct {
			HomeTeam    string    `json:"home_team"`
			AwayTeam    string    `json:"away_team"`
			MatchDate   time.Time `json:"match_date"`
			Venue       string    `json:"venue"`
			GroupNumber int       `json:"group_number"`
		}
		if err := c.BindJSON(&req); err != nil || req.HomeTeam == "" || req.AwayTeam == "" || req.MatchDate.IsZero() {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}

		var m CalendarMatch
		err := db.QueryRow(context.Background(),
			`INSERT INTO calendar_matches(home_team, away_team, match_date, venue, group_number)
			 VALUES ($1,$2,$3,$4,$5)
			 RETURNING id, home_team, away_team, match_date, venue, home_score, away_score, group_number`,
			req.HomeTeam, req.AwayTeam, req.MatchDate, req.Venue, req.GroupNumber,
		).Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.MatchDate, &m.Venue,
			&m.HomeScore, &m.AwayScore, &m.GroupNumber)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_create_calendar_match", "match_id="+strconv.Itoa(m.ID))
		c.JSON(201, m)
	}
}

func UpdateCalendarMatch(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))
		var req struct {
			HomeTeam    string    `json:"home_team"`
			AwayTeam    string    `json:"away_team"`
			MatchDate   time.Time `json:"match_date"`
			Venue       string    `json:"venue"`
			HomeScore   *int      `json:"home_score"`
			AwayScore   *int      `json:"away_score"`
			GroupNumber int       `json:"group_number"`
		}
		if err := c.BindJSON(&req); err != nil || req.HomeTeam == "" || req.AwayTeam == "" || req.MatchDate.IsZero() {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}

		var m CalendarMatch
		err := db.QueryRow(context.Background(),
			`UPDATE calendar_matches
			 SET home_team=$1, away_team=$2, match_date=$3, venue=$4, home_score=$5, away_score=$6, group_number=$7
			 WHERE id=$8
			 RETURNING id, home_team, away_team, match_date, venue, home_score, away_score, group_number`,
			req.HomeTeam, req.AwayTeam, req.MatchDate, req.Venue, req.HomeScore, req.AwayScore, req.GroupNumber, id,
		).Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.MatchDate, &m.Venue,
			&m.HomeScore, &m.AwayScore, &m.GroupNumber)
		if err != nil {
			c.JSON(404, gin.H{"error": "match not found"})
			return
		}
		logAction(db, &actor, "admin_update_calendar_match", "match_id="+strconv.Itoa(id))
		c.JSON(200, m)
	}
}

func DeleteCalendarMatch(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))

		tag, err := qExec(context.Background(), db,
			psql.Delete("calendar_matches").Where("id = ?", id))
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(404, gin.H{"error": "match not found"})
			return
		}
		logAction(db, &actor, "admin_delete_calendar_match", "match_id="+strconv.Itoa(id))
		c.JSON(200, gin.H{"ok": true})
	}
}
