package internal

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func ListPlayers(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := psql.Select("id", "name", "position", "price", "total_points").
			From("players").
			OrderBy("name ASC")
		rows, err := qQuery(context.Background(), db, q)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer rows.Close()

		var out []Player
		for rows.Next() {
			var p Player
			_ = rows.Scan(&p.ID, &p.Name, &p.Position, &p.Price, &p.TotalPoints)
			out = append(out, p)
		}
		c.JSON(200, out)
	}
}

func GetPlayer(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		var p Player
		err := qRow(context.Background(), db,
			psql.Select("id", "name", "position", "price", "total_points").
				From("players").
				Where("id = ?", id),
		).Scan(&p.ID, &p.Name, &p.Position, &p.Price, &p.TotalPoints)
		if err != nil {
			c.JSON(404, gin.H{"error": "player not found"})
			return
		}
		c.JSON(200, p)
	}
}

func CreatePlayer(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		var req struct {
			Name     string `json:"name"`
			Position string `json:"position"`
			Price    int    `json:"price"`
		}
		if err := c.BindJSON(&req); err != nil || req.Name == "" {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}
		if req.Position != PositionGoalkeeper && req.Position != PositionOutfield {
			c.JSON(400, gin.H{"error": "position must be goalkeeper or outfield"})
			return
		}
		if req.Price < 0 {
			c.JSON(400, gin.H{"error": "price must be >= 0"})
			return
		}

		var p Player
		err := db.QueryRow(context.Background(),
			"INSERT INTO players(name, position, price, total_points) VALUES ($1,$2,$3,0) RETURNING id, name, position, price, total_points",
			req.Name, req.Position, req.Price,
		).Scan(&p.ID, &p.Name, &p.Position, &p.Price, &p.TotalPoints)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_create_player", req.Name)
		c.JSON(201, p)
	}
}

// UpdatePlayer edits name/position/price. Totals stay untouched: they only
// ever come out of the bonus recompute.
func UpdatePlayer(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))
		var req struct {
			Name     string `json:"name"`
			Position string `json:"position"`
			Price    int    `json:"price"`
		}
		if err := c.BindJSON(&req); err != nil || req.Name == "" {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}
		if req.Position != PositionGoalkeeper && req.Position != PositionOutfield {
			c.JSON(400, gin.H{"error": "position must be goalkeeper or outfield"})
			return
		}
		if req.Price < 0 {
			c.JSON(400, gin.H{"error": "price must be >= 0"})
			return
		}

		var p Player
		err := db.QueryRow(context.Background(),
			"UPDATE players SET name=$1, position=$2, price=$3 WHERE id=$4 RETURNING id, name, position, price, total_points",
			req.Name, req.Position, req.Price, id,
		).Scan(&p.ID, &p.Name, &p.Position, &p.Price, &p.TotalPoints)
		if err != nil {
			c.JSON(404, gin.H{"error": "player not found"})
			return
		}
		logAction(db, &actor, "admin_update_player", "player_id="+strconv.Itoa(id))
		c.JSON(200, p)
	}
}

func DeletePlayer(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))
		ctx := context.Background()

		var exists bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM players WHERE id=$1)", id).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "player not found"})
			return
		}

		var rostered bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM team_players WHERE player_id=$1)", id).Scan(&rostered)
		if rostered {
			c.JSON(409, gin.H{"error": "cannot delete a player that is part of a team"})
			return
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer tx.Rollback(ctx)

		_, err = tx.Exec(ctx, "DELETE FROM player_bonuses WHERE player_id=$1", id)
		if err == nil {
			_, err = tx.Exec(ctx, "DELETE FROM players WHERE id=$1", id)
		}
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		if err := tx.Commit(ctx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_delete_player", "player_id="+strconv.Itoa(id))
		c.JSON(200, gin.H{"ok": true})
	}
}
