package store

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pressly/goose/v3"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/sim"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SQLite keeps the roster in a relational table and doubles as the match
// archive. The driver is registered by the binary entrypoint.
type SQLite struct {
	db *sqlx.DB
}

// NewSQLite opens the database at dsn and brings the schema up to date.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrUnavailable, err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// competitorRow is the relational shape of a competitor. History rides along
// as a JSON column so the full match log round-trips.
type competitorRow struct {
	ID                     int64     `db:"id"`
	Name                   string    `db:"name"`
	Rating                 float64   `db:"rating"`
	WinStreak              int       `db:"win_streak"`
	LastActive             time.Time `db:"last_active"`
	History                []byte    `db:"history"`
	TierName               string    `db:"tier_name"`
	Division               string    `db:"division"`
	Placed                 bool      `db:"placed"`
	PlacementGamesPlayed   int       `db:"placement_games_played"`
	PlacementGamesRequired int       `db:"placement_games_required"`
	PlacementWins          int       `db:"placement_wins"`
	LP                     int       `db:"lp"`
	InPromo                bool      `db:"in_promo"`
	PromoGamesLeft         int       `db:"promo_games_left"`
	PromoWins              int       `db:"promo_wins"`
	PromoNeeded            int       `db:"promo_needed"`
	Wins                   int       `db:"wins"`
	Losses                 int       `db:"losses"`
}

func toRow(c *league.Competitor) (competitorRow, error) {
	history, err := json.Marshal(c.History)
	if err != nil {
		return competitorRow{}, fmt.Errorf("encode history: %w", err)
	}

	return competitorRow{
		ID:                     c.ID,
		Name:                   c.Name,
		Rating:                 c.Rating,
		WinStreak:              c.WinStreak,
		LastActive:             c.LastActive,
		History:                history,
		TierName:               c.Tier.Tier,
		Division:               c.Tier.Division,
		Placed:                 c.Placed,
		PlacementGamesPlayed:   c.PlacementGamesPlayed,
		PlacementGamesRequired: c.PlacementGamesRequired,
		PlacementWins:          c.PlacementWins,
		LP:                     c.LP,
		InPromo:                c.InPromo,
		PromoGamesLeft:         c.PromoGamesLeft,
		PromoWins:              c.PromoWins,
		PromoNeeded:            c.PromoNeeded,
		Wins:                   c.Wins,
		Losses:                 c.Losses,
	}, nil
}

func (r competitorRow) toCompetitor() (*league.Competitor, error) {
	c := &league.Competitor{
		ID:                     r.ID,
		Name:                   r.Name,
		Rating:                 r.Rating,
		WinStreak:              r.WinStreak,
		LastActive:             r.LastActive,
		Placed:                 r.Placed,
		PlacementGamesPlayed:   r.PlacementGamesPlayed,
		PlacementGamesRequired: r.PlacementGamesRequired,
		PlacementWins:          r.PlacementWins,
		LP:                     r.LP,
		InPromo:                r.InPromo,
		PromoGamesLeft:         r.PromoGamesLeft,
		PromoWins:              r.PromoWins,
		PromoNeeded:            r.PromoNeeded,
		Wins:                   r.Wins,
		Losses:                 r.Losses,
	}

	if len(r.History) > 0 {
		if err := json.Unmarshal(r.History, &c.History); err != nil {
			return nil, fmt.Errorf("%w: history: %v", ErrCorruptRecord, err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	c.Normalize()
	return c, nil
}

// Load reads the roster in id order. Rows that fail to decode are dropped
// with a warning.
func (s *SQLite) Load(ctx context.Context) ([]*league.Competitor, error) {
	var rows []competitorRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM competitors ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: select competitors: %v", ErrUnavailable, err)
	}

	roster := make([]*league.Competitor, 0, len(rows))
	for _, row := range rows {
		c, err := row.toCompetitor()
		if err != nil {
			log.Printf("[WARN] dropping competitor %d: %v", row.ID, err)
			continue
		}
		roster = append(roster, c)
	}
	return roster, nil
}

// Save replaces the stored roster wholesale in one transaction.
func (s *SQLite) Save(ctx context.Context, roster []*league.Competitor) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM competitors`); err != nil {
		return fmt.Errorf("clear competitors: %w", err)
	}

	const query = `INSERT INTO competitors (
			id, name, rating, win_streak, last_active, history, tier_name, division,
			placed, placement_games_played, placement_games_required, placement_wins,
			lp, in_promo, promo_games_left, promo_wins, promo_needed, wins, losses
		) VALUES (
			:id, :name, :rating, :win_streak, :last_active, :history, :tier_name, :division,
			:placed, :placement_games_played, :placement_games_required, :placement_wins,
			:lp, :in_promo, :promo_games_left, :promo_wins, :promo_needed, :wins, :losses
		)`

	for _, c := range roster {
		row, err := toRow(c)
		if err != nil {
			return fmt.Errorf("encode competitor %d: %w", c.ID, err)
		}
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("insert competitor %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", ErrUnavailable, err)
	}
	return nil
}

// archiveRow is the relational shape of an archived match.
type archiveRow struct {
	ID       string    `db:"id"`
	PlayedAt time.Time `db:"played_at"`
	PlayerA  int64     `db:"player_a"`
	PlayerB  int64     `db:"player_b"`
	ResultA  float64   `db:"result_a"`
	DeltaA   float64   `db:"delta_a"`
	RatingA  float64   `db:"rating_a"`
	RatingB  float64   `db:"rating_b"`
}

// ArchiveMatches appends finished match records to the archive table.
func (s *SQLite) ArchiveMatches(ctx context.Context, records []sim.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO match_archive (
			id, played_at, player_a, player_b, result_a, delta_a, rating_a, rating_b
		) VALUES (:id, :played_at, :player_a, :player_b, :result_a, :delta_a, :rating_a, :rating_b)`

	for _, rec := range records {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("generate archive id: %w", err)
		}

		row := archiveRow{
			ID:       id,
			PlayedAt: rec.Time,
			PlayerA:  rec.PlayerA,
			PlayerB:  rec.PlayerB,
			ResultA:  rec.ResultA,
			DeltaA:   rec.DeltaA,
			RatingA:  rec.RatingA,
			RatingB:  rec.RatingB,
		}
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("insert match record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
