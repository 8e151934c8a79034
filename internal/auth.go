package internal

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func Login(db *pgxpool.Pool, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}

		var u User
		var passHash string
		err := db.QueryRow(context.Background(),
			"SELECT id, name, username, role, pass_hash FROM users WHERE username=$1",
			req.Username,
		).Scan(&u.ID, &u.Name, &u.Username, &u.Role, &passHash)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid credentials"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(passHash), []byte(req.Password)) != nil {
			c.JSON(401, gin.H{"error": "invalid credentials"})
			return
		}

		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			UserID: u.ID,
			Role:   u.Role,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				Issuer:    "fantatorneo",
			},
		})
		s, _ := tok.SignedString([]byte(secret))

		logAction(db, &u.ID, "login", "success")
		c.JSON(200, gin.H{"token": s, "user": u})
	}
}

// Register creates a user. Reached only through the admin middleware;
// there is no self-service signup.
func Register(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := uid(c)
		var req struct {
			Name     string `json:"name"`
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad json"})
			return
		}
		if req.Name == "" || req.Username == "" || req.Password == "" {
			c.JSON(400, gin.H{"error": "fill all fields"})
			return
		}
		if req.Role == "" {
			req.Role = "user"
		}
		if req.Role != "user" && req.Role != "admin" {
			c.JSON(400, gin.H{"error": "role must be user or admin"})
			return
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), 10)

		var u User
		err := db.QueryRow(context.Background(),
			"INSERT INTO users(name, username, pass_hash, role) VALUES ($1,$2,$3,$4) RETURNING id, name, username, role",
			req.Name, req.Username, string(hash), req.Role,
		).Scan(&u.ID, &u.Name, &u.Username, &u.Role)
		if err != nil {
			c.JSON(409, gin.H{"error": "username already exists"})
			return
		}
		logAction(db, &actor, "register", "user_id="+strconv.Itoa(u.ID))
		c.JSON(201, u)
	}
}
