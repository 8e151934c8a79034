package internal

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func ListMatchdays(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := psql.Select("id", "number", "name").From("matchdays").OrderBy("number ASC")
		rows, err := qQuery(context.Background(), db, q)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer rows.Close()

		var out []Matchday
		for rows.Next() {
			var m Matchday
			_ = rows.Scan(&m.ID, &m.Number, &m.Name)
			out = append(out, m)
		}
		c.JSON(200, out)
	}
}

func GetMatchday(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		ctx := context.Background()

		var m Matchday
		err := db.QueryRow(ctx,
			"SELECT id, number, name FROM matchdays WHERE id=$1", id,
		).Scan(&m.ID, &m.Number, &m.Name)
		if err != nil {
			c.JSON(404, gin.H{"error": "matchday not found"})
			return
		}

		rows, err := db.Query(ctx,
			`SELECT pb.player_id, pb.matchday_id, pb.points, p.name, p.position
			 FROM player_bonuses pb
			 JOIN players p ON p.id = pb.player_id
			 WHERE pb.matchday_id = $1
			 ORDER BY p.name ASC`, id)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer rows.Close()

		bonuses := []PlayerBonus{}
		for rows.Next() {
			var b PlayerBonus
			_ = rows.Scan(&b.PlayerID, &b.MatchdayID, &b.Points, &b.PlayerName, &b.Position)
			bonuses = append(bonuses, b)
		}

		c.JSON(200, gin.H{
			"id":      m.ID,
			"number":  m.Number,
			"name":    m.Name,
			"bonuses": bonuses,
		})
	}
}

func CreateMatchday(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		var req struct {
			Number int    `json:"number"`
			Name   string `json:"name"`
		}
		if err := c.BindJSON(&req); err != nil || req.Number <= 0 || req.Name == "" {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}

		var m Matchday
		err := db.QueryRow(context.Background(),
			"INSERT INTO matchdays(number, name) VALUES ($1,$2) RETURNING id, number, name",
			req.Number, req.Name,
		).Scan(&m.ID, &m.Number, &m.Name)
		if err != nil {
			c.JSON(409, gin.H{"error": "matchday number already exists"})
			return
		}
		logAction(db, &actor, "admin_create_matchday", "matchday_id="+strconv.Itoa(m.ID))
		c.JSON(201, m)
	}
}

// DeleteMatchday drops the matchday and its bonuses, then re-derives the
// totals of every player that had a bonus there and of every team.
func DeleteMatchday(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))
		ctx := context.Background()

		var exists bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM matchdays WHERE id=$1)", id).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "matchday not found"})
			return
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer tx.Rollback(ctx)

		rows, err := qQueryTx(ctx, tx,
			psql.Select("player_id").From("player_bonuses").Where("matchday_id = ?", id))
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		var affected []int
		for rows.Next() {
			var pid int
			_ = rows.Scan(&pid)
			affected = append(affected, pid)
		}
		rows.Close()

		_, err = tx.Exec(ctx, "DELETE FROM player_bonuses WHERE matchday_id=$1", id)
		if err == nil {
			_, err = tx.Exec(ctx, "DELETE FROM matchdays WHERE id=$1", id)
		}
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}

		for _, pid := range affected {
			if err := recomputePlayerTotal(ctx, tx, pid); err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}
		}
		if err := recomputeAllTeams(ctx, tx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}

		if err := tx.Commit(ctx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_delete_matchday", "matchday_id="+strconv.Itoa(id))
		c.JSON(200, gin.H{"ok": true})
	}
}

// MatchdayPlayers returns every player with the points they scored on this
// matchday (0 when no bonus row exists). This backs the admin bonus-entry grid.
func MatchdayPlayers(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		ctx := context.Background()

		var exists bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM matchdays WHERE id=$1)", id).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "matchday not found"})
			return
		}

		rows, err := db.Query(ctx,
			`SELECT p.id, p.name, p.position, p.price, p.total_points, COALESCE(pb.points, 0)
			 FROM players p
			 LEFT JOIN player_bonuses pb ON pb.player_id = p.id AND pb.matchday_id = $1
			 ORDER BY p.name ASC`, id)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer rows.Close()

		type row struct {
			Player
			MatchdayPoints int `json:"matchday_points"`
		}
		out := []row{}
		for rows.Next() {
			var r row
			_ = rows.Scan(&r.ID, &r.Name, &r.Position, &r.Price, &r.TotalPoints, &r.MatchdayPoints)
			out = append(out, r)
		}
		c.JSON(200, out)
	}
}

// ApplyBonuses upserts a batch of (player, matchday) bonus rows and re-derives
// the affected totals, all inside one transaction. A repeated call with the
// same payload is a no-op: the upsert replaces, never accumulates, and every
// total is a full SUM over source rows.
func ApplyBonuses(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		matchdayID, _ := strconv.Atoi(c.Param("id"))

		var req struct {
			Bonuses []struct {
				PlayerID    int  `json:"playerId"`
				Points      int  `json:"points"`
				UpdateTeams bool `json:"updateTeams"`
			} `json:"bonuses"`
			UpdateLeaderboard bool `json:"updateLeaderboard"`
		}
		if err := c.BindJSON(&req); err != nil || len(req.Bonuses) == 0 {
			c.JSON(400, gin.H{"error": "invalid bonuses data"})
			return
		}

		ctx := context.Background()

		var exists bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM matchdays WHERE id=$1)", matchdayID).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "matchday not found"})
			return
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer tx.Rollback(ctx)

		for _, b := range req.Bonuses {
			if b.PlayerID == 0 {
				c.JSON(400, gin.H{"error": "invalid bonus data"})
				return
			}

			var ok bool
			_ = tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM players WHERE id=$1)", b.PlayerID).Scan(&ok)
			if !ok {
				c.JSON(404, gin.H{"error": "player " + strconv.Itoa(b.PlayerID) + " not found"})
				return
			}

			_, err = tx.Exec(ctx,
				`INSERT INTO player_bonuses(player_id, matchday_id, points)
				 VALUES ($1,$2,$3)
				 ON CONFLICT (player_id, matchday_id) DO UPDATE SET points = EXCLUDED.points`,
				b.PlayerID, matchdayID, b.Points,
			)
			if err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}

			if err := recomputePlayerTotal(ctx, tx, b.PlayerID); err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}
			if b.UpdateTeams {
				if err := recomputePlayerTeams(ctx, tx, b.PlayerID); err != nil {
					c.JSON(500, gin.H{"error": "db"})
					return
				}
			}
		}

		if req.UpdateLeaderboard {
			if err := recomputeAllTeams(ctx, tx); err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}
		}

		if err := tx.Commit(ctx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_apply_bonuses",
			"matchday_id="+strconv.Itoa(matchdayID)+" count="+strconv.Itoa(len(req.Bonuses)))
		c.JSON(200, gin.H{"ok": true, "leaderboardUpdated": req.UpdateLeaderboard})
	}
}

// DeleteBonus removes one (player, matchday) bonus row and re-derives the
// player's total and all team totals from what remains.
func DeleteBonus(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		matchdayID, _ := strconv.Atoi(c.Param("id"))
		playerID, _ := strconv.Atoi(c.Param("playerId"))
		ctx := context.Background()

		var exists bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM matchdays WHERE id=$1)", matchdayID).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "matchday not found"})
			return
		}
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM players WHERE id=$1)", playerID).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "player not found"})
			return
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer tx.Rollback(ctx)

		tag, err := tx.Exec(ctx,
			"DELETE FROM player_bonuses WHERE player_id=$1 AND matchday_id=$2",
			playerID, matchdayID,
		)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		if tag.RowsAffected() == 0 {
			c.JSON(404, gin.H{"error": "bonus not found"})
			return
		}

		if err := recomputePlayerTotal(ctx, tx, playerID); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		if err := recomputePlayerTeams(ctx, tx, playerID); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}

		if err := tx.Commit(ctx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_delete_bonus",
			"matchday_id="+strconv.Itoa(matchdayID)+" player_id="+strconv.Itoa(playerID))
		c.JSON(200, gin.H{"ok": true})
	}
}
