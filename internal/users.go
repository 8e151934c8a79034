package internal

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func ListUsers(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(context.Background(),
			"SELECT id, name, username, role FROM users ORDER BY id ASC",
		)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer rows.Close()

		var out []User
		for rows.Next() {
			var u User
			_ = rows.Scan(&u.ID, &u.Name, &u.Username, &u.Role)
			out = append(out, u)
		}
		c.JSON(200, out)
	}
}

// GetUser allows admins to read anyone; a regular user only themselves.
func GetUser(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		if !isAdmin(c) && uid(c) != id {
			c.JSON(403, gin.H{"error": "access denied"})
			return
		}

		var u User
		err := db.QueryRow(context.Background(),
			"SELECT id, name, username, role FROM users WHERE id=$1", id,
		).Scan(&u.ID, &u.Name, &u.Username, &u.Role)
		if err != nil {
			c.JSON(404, gin.H{"error": "user not found"})
			return
		}
		c.JSON(200, u)
	}
}

func UpdateUser(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))
		var req struct {
			Name     string `json:"name"`
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}
		if req.Name == "" || req.Username == "" {
			c.JSON(400, gin.H{"error": "fill all fields"})
			return
		}
		if req.Role != "user" && req.Role != "admin" {
			c.JSON(400, gin.H{"error": "role must be user or admin"})
			return
		}

		ctx := context.Background()
		var u User
		var err error
		if req.Password != "" {
			hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
			err = db.QueryRow(ctx,
				"UPDATE users SET name=$1, username=$2, pass_hash=$3, role=$4 WHERE id=$5 RETURNING id, name, username, role",
				req.Name, req.Username, string(hash), req.Role, id,
			).Scan(&u.ID, &u.Name, &u.Username, &u.Role)
		} else {
			err = db.QueryRow(ctx,
				"UPDATE users SET name=$1, username=$2, role=$3 WHERE id=$4 RETURNING id, name, username, role",
				req.Name, req.Username, req.Role, id,
			).Scan(&u.ID, &u.Name, &u.Username, &u.Role)
		}
		if err != nil {
			c.JSON(404, gin.H{"error": "user not found"})
			return
		}
		logAction(db, &actor, "admin_update_user", "user_id="+strconv.Itoa(id))
		c.JSON(200, u)
	}
}

// DeleteUser also removes the user's team and its roster rows. An orphaned
// team would break every leaderboard join on users.
func DeleteUser(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		id, _ := strconv.Atoi(c.Param("id"))
		if id == actor {
			c.JSON(400, gin.H{"error": "cannot delete yourself"})
			return
		}

		ctx := context.Background()
		tx, err := db.Begin(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		defer tx.Rollback(ctx)

		var exists bool
		_ = tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)", id).Scan(&exists)
		if !exists {
			c.JSON(404, gin.H{"error": "user not found"})
			return
		}

		_, err = tx.Exec(ctx,
			"DELETE FROM team_players WHERE team_id IN (SELECT id FROM teams WHERE user_id=$1)", id)
		if err == nil {
			_, err = tx.Exec(ctx, "DELETE FROM teams WHERE user_id=$1", id)
		}
		if err == nil {
			_, err = tx.Exec(ctx, "DELETE FROM users WHERE id=$1", id)
		}
		if err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}

		if err := tx.Commit(ctx); err != nil {
			c.JSON(500, gin.H{"error": "db"})
			return
		}
		logAction(db, &actor, "admin_delete_user", "user_id="+strconv.Itoa(id))
		c.JSON(200, gin.H{"ok": true})
	}
}
