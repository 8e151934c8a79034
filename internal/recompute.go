package internal

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Totals are cached on players and teams but never adjusted incrementally:
// every write path re-derives them with a full SUM over the source rows, so a
// recompute is idempotent and repairs any prior drift. All of these run inside
// the caller's transaction.

func recomputePlayerTotal(ctx context.Context, tx pgx.Tx, playerID int) error {
	_, err := tx.Exec(ctx,
		`UPDATE players
		 SET total_points = (
		   SELECT COALESCE(SUM(points), 0)
		   FROM player_bonuses
		   WHERE player_id = $1
		 )
		 WHERE id = $1`,
		playerID,
	)
	return err
}

// recomputePlayerTeams refreshes every team that has this player on its roster.
func recomputePlayerTeams(ctx context.Context, tx pgx.Tx, playerID int) error {
	_, err := tx.Exec(ctx,
		`UPDATE teams t
		 SET total_points = (
		   SELECT COALESCE(SUM(p.total_points), 0)
		   FROM team_players tp
		   JOIN players p ON p.id = tp.player_id
		   WHERE tp.team_id = t.id
		 )
		 WHERE t.id IN (SELECT team_id FROM team_players WHERE player_id = $1)`,
		playerID,
	)
	return err
}

func recomputeTeamTotal(ctx context.Context, tx pgx.Tx, teamID int) error {
	_, err := tx.Exec(ctx,
		`UPDATE teams
		 SET total_points = (
		   SELECT COALESCE(SUM(p.total_points), 0)
		   FROM team_players tp
		   JOIN players p ON p.id = tp.player_id
		   WHERE tp.team_id = $1
		 )
		 WHERE id = $1`,
		teamID,
	)
	return err
}

// recomputeAllTeams is the authoritative fix-everything path used after bulk
// bonus edits.
func recomputeAllTeams(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`UPDATE teams t
		 SET total_points = (
		   SELECT COALESCE(SUM(p.total_points), 0)
		   FROM team_players tp
		   JOIN players p ON p.id = tp.player_id
		   WHERE tp.team_id = t.id
		 )`,
	)
	return err
}
