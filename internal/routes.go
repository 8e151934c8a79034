package internal

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, secret string) {
	api := r.Group("/api")
	{
		api.POST("/auth/login", Login(db, secret))
		api.POST("/auth/register", Auth(secret), RequireAdmin(), Register(db))

		// users: list/update/delete are admin-only, read allows self
		api.GET("/users", Auth(secret), RequireAdmin(), ListUsers(db))
		api.GET("/users/:id", Auth(secret), GetUser(db))
		api.PUT("/users/:id", Auth(secret), RequireAdmin(), UpdateUser(db))
		api.DELETE("/users/:id", Auth(secret), RequireAdmin(), DeleteUser(db))

		// players
		api.GET("/players", Auth(secret), ListPlayers(db))
		api.GET("/players/:id", Auth(secret), GetPlayer(db))
		api.POST("/players", Auth(secret), RequireAdmin(), CreatePlayer(db))
		api.PUT("/players/:id", Auth(secret), RequireAdmin(), UpdatePlayer(db))
		api.DELETE("/players/:id", Auth(secret), RequireAdmin(), DeletePlayer(db))

		// teams
		api.GET("/teams", Auth(secret), ListTeams(db))
		api.GET("/teams/:id", Auth(secret), GetTeam(db))
		api.GET("/teams/user/:userId", Auth(secret), GetUserTeam(db))
		api.POST("/teams", Auth(secret), CreateTeam(db))
		api.PUT("/teams/:id", Auth(secret), RequireAdmin(), UpdateTeam(db))
		api.DELETE("/teams/:id", Auth(secret), RequireAdmin(), DeleteTeam(db))

		// matchdays and bonuses
		bonus := api.Group("/bonus", Auth(secret))
		{
			bonus.GET("/matchdays", ListMatchdays(db))
			bonus.GET("/matchdays/:id", GetMatchday(db))
			bonus.POST("/matchdays", RequireAdmin(), CreateMatchday(db))
			bonus.DELETE("/matchdays/:id", RequireAdmin(), DeleteMatchday(db))
			bonus.GET("/matchdays/:id/players", RequireAdmin(), MatchdayPlayers(db))
			bonus.POST("/matchdays/:id/bonuses", RequireAdmin(), ApplyBonuses(db))
			bonus.DELETE("/matchdays/:id/bonuses/:playerId", RequireAdmin(), DeleteBonus(db))
		}

		api.GET("/leaderboard", Auth(secret), Leaderboard(db))
		api.GET("/leaderboard/detailed", Auth(secret), DetailedLeaderboard(db))

		// calendar: list is public, the rest is admin
		api.GET("/calendar/matches", ListCalendarMatches(db))
		api.POST("/calendar/matches", Auth(secret), RequireAdmin(), CreateCalendarMatch(db))
		api.PUT("/calendar/matches/:id", Auth(secret), RequireAdmin(), UpdateCalendarMatch(db))
		api.DELETE("/calendar/matches/:id", Auth(secret), RequireAdmin(), DeleteCalendarMatch(db))

		admin := api.Group("/admin", Auth(secret), RequireAdmin())
		{
			admin.GET("/logs", AdminLogs(db))
		}
	}
}
