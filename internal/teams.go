package internal

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type teamResponse struct {
	Team
	OwnerUsername string       `json:"owner_username"`
	Players       []TeamPlayer `json:"players"`
}

func ListTeams(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(context.Background(),
			`SELECT t.id, t.name, t.user_id, t.total_points, u.username
			 FROM teams t
			 JOIN users u ON u.id = t.user_id
			 ORDER BY t.id ASC`,
		)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer rows.Close()

		type row struct {
			Team
			OwnerUsername string `json:"owner_username"`
		}
		var out []row
		for rows.Next() {
			var r row
			_ = rows.Scan(&r.ID, &r.Name, &r.UserID, &r.TotalPoints, &r.OwnerUsername)
			out = append(out, r)
		}
		c.JSON(200, out)
	}
}

func GetTeam(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		ctx := context.Background()

		var resp teamResponse
		err := db.QueryRow(ctx,
			`SELECT t.id, t.name, t.user_id, t.total_points, u.username
			 FROM teams t
			 JOIN users u ON u.id = t.user_id
			 WHERE t.id = $1`, id,
		).Scan(&resp.ID, &resp.Name, &resp.UserID, &resp.TotalPoints, &resp.OwnerUsername)
		if err != nil {
			c.JSON(404, gin.H{"error": "team not found"})
			return
		}

		resp.Players, err = teamRoster(ctx, db, id)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		c.JSON(200, resp)
	}
}

// GetUserTeam returns the team owned by :userId. Admins may look up anyone;
// a regular user only their own.
func GetUserTeam(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := strconv.Atoi(c.Param("userId"))
		if !isAdmin(c) && uid(c) != userID {
			c.JSON(403, gin.H{"error": "access denied"})
			return
		}
		ctx := context.Background()

		var resp teamResponse
		err := db.QueryRow(ctx,
			`SELECT t.id, t.name, t.user_id, t.total_points, u.username
			 FROM teams t
			 JOIN users u ON u.id = t.user_id
			 WHERE t.user_id = $1`, userID,
		).Scan(&resp.ID, &resp.Name, &resp.UserID, &resp.TotalPoints, &resp.OwnerUsername)
		if err != nil {
			c.JSON(404, gin.H{"error": "team not found for this user"})
			return
		}

		resp.Players, err = teamRoster(ctx, db, resp.ID)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		c.JSON(200, resp)
	}
}

// CreateTeam is the one self-service write: each user builds their squad
// exactly once. The UNIQUE index on teams.user_id backstops the pre-check
// against two concurrent creations by the same user.
func CreateTeam(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := uid(c)
		var req struct {
			Name      string `json:"name"`
			PlayerIDs []int  `json:"playerIds"`
		}
		if err := c.BindJSON(&req); err != nil || req.Name == "" || len(req.PlayerIDs) == 0 {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}

		ctx := context.Background()

		var owns bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM teams WHERE user_id=$1)", userID).Scan(&owns)
		if owns {
			c.JSON(409, gin.H{"error": "user already has a team"})
			return
		}

		ids := dedupIDs(req.PlayerIDs)
		players, missing, err := lookupPlayers(ctx, db, ids)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		if missing != 0 {
			c.JSON(400, gin.H{"error": "player " + strconv.Itoa(missing) + " not found"})
			return
		}
		if err := ValidateRoster(players); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer tx.Rollback(ctx)

		var teamID int
		err = tx.QueryRow(ctx,
			"INSERT INTO teams(name, user_id, total_points) VALUES ($1,$2,0) RETURNING id",
			req.Name, userID,
		).Scan(&teamID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				c.JSON(409, gin.H{"error": "user already has a team"})
				return
			}
			c.JSON(500, gin.H{"error": "db"})
			return
		}

		for _, p := range players {
			_, err = qExecTx(ctx, tx, psql.Insert("team_players").
				Columns("team_id", "player_id", "is_goalkeeper").
				Values(teamID, p.ID, p.Position == PositionGoalkeeper))
			if err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}
		}

		if err := tx.Commit(ctx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &userID, "create_team", "team_id="+strconv.Itoa(teamID))

		var resp teamResponse
		_ = db.QueryRow(ctx,
			`SELECT t.id, t.name, t.user_id, t.total_points, u.username
			 FROM teams t
			 JOIN users u ON u.id = t.user_id
			 WHERE t.id = $1`, teamID,
		).Scan(&resp.ID, &resp.Name, &resp.UserID, &resp.TotalPoints, &resp.OwnerUsername)
		resp.Players, _ = teamRoster(ctx, db, teamID)
		c.JSON(201, resp)
	}
}

// UpdateTeam renames or reassigns a team and, when playerIds is present,
// replaces the roster under the same composition rules as creation. The
// team total is re-derived from the new roster before commit.
func UpdateTeam(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))
		var req struct {
			Name      string `json:"name"`
			UserID    int    `json:"user_id"`
			PlayerIDs []int  `json:"playerIds"`
		}
		if err := c.BindJSON(&req); err != nil || req.Name == "" || req.UserID == 0 {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}

		ctx := context.Background()

		var exists bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM teams WHERE id=$1)", id).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "team not found"})
			return
		}

		var players []Player
		if req.PlayerIDs != nil {
			ids := dedupIDs(req.PlayerIDs)
			var missing int
			var err error
			players, missing, err = lookupPlayers(ctx, db, ids)
			if err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}
			if missing != 0 {
				c.JSON(400, gin.H{"error": "player " + strconv.Itoa(missing) + " not found"})
				return
			}
			if err := ValidateRoster(players); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer tx.Rollback(ctx)

		_, err = tx.Exec(ctx,
			"UPDATE teams SET name=$1, user_id=$2 WHERE id=$3",
			req.Name, req.UserID, id,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				c.JSON(409, gin.H{"error": "new owner already has a team"})
				return
			}
			c.JSON(500, gin.H{"error": "db"})
			return
		}

		if req.PlayerIDs != nil {
			_, err = tx.Exec(ctx, "DELETE FROM team_players WHERE team_id=$1", id)
			if err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}
			for _, p := range players {
				_, err = qExecTx(ctx, tx, psql.Insert("team_players").
					Columns("team_id", "player_id", "is_goalkeeper").
					Values(id, p.ID, p.Position == PositionGoalkeeper))
				if err != nil {
					c.JSON(500, gin.H{"error": "db"})
					return
				}
			}
			if err := recomputeTeamTotal(ctx, tx, id); err != nil {
				c.JSON(500, gin.H{"error": "db"})
				return
			}
		}

		if err := tx.Commit(ctx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_update_team", "team_id="+strconv.Itoa(id))

		var resp teamResponse
		_ = db.QueryRow(ctx,
			`SELECT t.id, t.name, t.user_id, t.total_points, u.username
			 FROM teams t
			 JOIN users u ON u.id = t.user_id
			 WHERE t.id = $1`, id,
		).Scan(&resp.ID, &resp.Name, &resp.UserID, &resp.TotalPoints, &resp.OwnerUsername)
		resp.Players, _ = teamRoster(ctx, db, id)
		c.JSON(200, resp)
	}
}

func DeleteTeam(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))
		ctx := context.Background()

		var exists bool
		_ = db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM teams WHERE id=$1)", id).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "team not found"})
			return
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer tx.Rollback(ctx)

		_, err = tx.Exec(ctx, "DELETE FROM team_players WHERE team_id=$1", id)
		if err == nil {
			_, err = tx.Exec(ctx, "DELETE FROM teams WHERE id=$1", id)
		}
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		if err := tx.Commit(ctx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_delete_team", "team_id="+strconv.Itoa(id))
		c.JSON(200, gin.H{"ok": true})
	}
}

/* ===================== HELPERS ===================== */

// lookupPlayers resolves ids to player rows. When an id has no row, it is
// returned as missing (0 means all resolved).
func lookupPlayers(ctx context.Context, db *pgxpool.Pool, ids []int) ([]Player, int, error) {
	rows, err := db.Query(ctx,
		"SELECT id, name, position, price, total_points FROM players WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	byID := map[int]Player{}
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.Price, &p.TotalPoints); err != nil {
			return nil, 0, err
		}
		byID[p.ID] = p
	}

	players := make([]Player, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, id, nil
		}
		players = append(players, p)
	}
	return players, 0, nil
}

func teamRoster(ctx context.Context, db *pgxpool.Pool, teamID int) ([]TeamPlayer, error) {
	rows, err := db.Query(ctx,
		`SELECT p.id, p.name, p.position, p.price, p.total_points, tp.is_goalkeeper
		 FROM team_players tp
		 JOIN players p ON p.id = tp.player_id
		 WHERE tp.team_id = $1
		 ORDER BY tp.is_goalkeeper DESC, p.name ASC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TeamPlayer{}
	for rows.Next() {
		var tp TeamPlayer
		if err := rows.Scan(&tp.ID, &tp.Name, &tp.Position, &tp.Price, &tp.TotalPoints, &tp.IsGoalkeeper); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, nil
}
