package internal

import (
	"context"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

/* ===================== CONNECT ===================== */

func MustDB(url string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Fatal(err)
	}
	cfg.MaxConns = 10

	var pool *pgxpool.Pool

	deadline := time.Now().Add(30 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				cancel()
				break
			}
			pool.Close()
			err = ctx.Err()
		}
		cancel()

		if time.Now().After(deadline) {
			log.Fatalf("failed to connect DB after retries: %v", err)
		}
		time.Sleep(1 * time.Second)
	}

	if err := initSchema(pool); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	return pool
}

/* ===================== SCHEMA ===================== */

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	username   TEXT NOT NULL UNIQUE,
	pass_hash  TEXT NOT NULL,
	role       TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin'))
);

CREATE TABLE IF NOT EXISTS players (
	id           SERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	position     TEXT NOT NULL CHECK (position IN ('goalkeeper','outfield')),
	price        INT  NOT NULL DEFAULT 0,
	total_points INT  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS teams (
	id           SERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	user_id      INT  NOT NULL UNIQUE REFERENCES users(id),
	total_points INT  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS team_players (
	team_id       INT  NOT NULL REFERENCES teams(id),
	player_id     INT  NOT NULL REFERENCES players(id),
	is_goalkeeper BOOL NOT NULL DEFAULT false,
	PRIMARY KEY (team_id, player_id)
);

CREATE TABLE IF NOT EXISTS matchdays (
	id     SERIAL PRIMARY KEY,
	number INT  NOT NULL UNIQUE,
	name   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS player_bonuses (
	player_id   INT NOT NULL REFERENCES players(id),
	matchday_id INT NOT NULL REFERENCES matchdays(id),
	points      INT NOT NULL,
	PRIMARY KEY (player_id, matchday_id)
);

CREATE TABLE IF NOT EXISTS calendar_matches (
	id           SERIAL PRIMARY KEY,
	home_team    TEXT NOT NULL,
	away_team    TEXT NOT NULL,
	match_date   TIMESTAMPTZ NOT NULL,
	venue        TEXT NOT NULL DEFAULT '',
	home_score   INT,
	away_score   INT,
	group_number INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS logs (
	id         BIGSERIAL PRIMARY KEY,
	actor_id   INT,
	action     TEXT NOT NULL,
	details    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func initSchema(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, schema)
	return err
}

/* ===================== SQUIRREL HELPERS ===================== */

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ----------- NON-TX -----------

func qExec(ctx context.Context, db *pgxpool.Pool, q sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return db.Exec(ctx, sql, args...)
}

func qQuery(ctx context.Context, db *pgxpool.Pool, q sq.SelectBuilder) (pgx.Rows, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return db.Query(ctx, sql, args...)
}

func qRow(ctx context.Context, db *pgxpool.Pool, q sq.SelectBuilder) pgx.Row {
	sql, args, _ := q.ToSql()
	return db.QueryRow(ctx, sql, args...)
}

// ----------- TX -----------

func qExecTx(ctx context.Context, tx pgx.Tx, q sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return tx.Exec(ctx, sql, args...)
}

func qQueryTx(ctx context.Context, tx pgx.Tx, q sq.SelectBuilder) (pgx.Rows, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return tx.Query(ctx, sql, args...)
}
