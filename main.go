package main

import (
	"log"
	"os"

	"fantatorneo/internal"

	"github.com/gin-gonic/gin"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db := internal.MustDB(dbURL)
	defer db.Close()

	r := gin.Default()
	internal.RegisterRoutes(r, db, secret)

	log.Printf("Listening on :%s", port)
	_ = r.Run(":" + port)
}
