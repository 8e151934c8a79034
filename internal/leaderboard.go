package internal

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Leaderboard orders teams by cached total, highest first. Equal totals fall
// back to team id ascending so the order is stable across reads.
func Leaderboard(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := psql.Select("t.id", "t.name", "t.total_points", "u.username").
			From("teams t").
			Join("users u ON u.id = t.user_id").
			OrderBy("t.total_points DESC", "t.id ASC")
		rows, err := qQuery(context.Background(), db, q)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer rows.Close()

		out := []LeaderboardEntry{}
		for rows.Next() {
			var e LeaderboardEntry
			_ = rows.Scan(&e.ID, &e.Name, &e.TotalPoints, &e.OwnerUsername)
			out = append(out, e)
		}
		c.JSON(200, out)
	}
}

// DetailedLeaderboard nests each team's roster with per-player totals.
func DetailedLeaderboard(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		q := psql.Select("t.id", "t.name", "t.total_points", "u.username").
			From("teams t").
			Join("users u ON u.id = t.user_id").
			OrderBy("t.total_points DESC", "t.id ASC")
		rows, err := qQuery(ctx, db, q)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}

		var entries []LeaderboardEntry
		for rows.Next() {
			var e LeaderboardEntry
			_ = rows.Scan(&e.ID, &e.Name, &e.TotalPoints, &e.OwnerUsername)
			entries = append(entries, e)
		}
		rows.Close()

		type detailed struct {
			LeaderboardEntry
			Players []TeamPlayer `json:"players"`
		}
		out := []detailed{}
		for _, e := range entries {
			roster, err := teamRoster(ctx, db, e.ID)
			if err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}
			out = append(out, detailed{LeaderboardEntry: e, Players: roster})
		}
		c.JSON(200, out)
	}
}
