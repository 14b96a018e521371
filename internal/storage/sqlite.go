package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database holding the title catalog and per-user
// interaction records.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database in dataDir and runs pending migrations.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "rateflix.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't been run yet.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// --- Users ---

func (s *Store) CreateUser(ctx context.Context, email, firstName string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, first_name) VALUES (?, ?)", email, firstName)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) GetUserFirstName(ctx context.Context, userID int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT first_name FROM users WHERE user_id = ?", userID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return name, err
}

// --- Titles ---

// CreateTitle inserts a title and attaches its genres, creating genre rows
// as needed.
func (s *Store) CreateTitle(ctx context.Context, title, titleType string, releaseYear int, genres []string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning title transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO titles (title, title_type, release_year) VALUES (?, ?, ?)",
		title, titleType, releaseYear)
	if err != nil {
		return 0, fmt.Errorf("inserting title: %w", err)
	}
	titleID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO genres (name) VALUES (?) ON CONFLICT(name) DO NOTHING", g); err != nil {
			return 0, fmt.Errorf("inserting genre %q: %w", g, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO title_genres (title_id, genre_id)
			SELECT ?, genre_id FROM genres WHERE name = ?`, titleID, g); err != nil {
			return 0, fmt.Errorf("linking genre %q: %w", g, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing title: %w", err)
	}
	return titleID, nil
}

// UpsertUserTitle creates or replaces a user's interaction record for a title.
func (s *Store) UpsertUserTitle(ctx context.Context, ut UserTitle) error {
	var status, watchedAt, rating any
	if ut.Status != "" {
		status = ut.Status
	}
	if !ut.WatchedAt.IsZero() {
		watchedAt = ut.WatchedAt.UTC().Format(time.RFC3339)
	}
	if ut.Rating > 0 {
		rating = ut.Rating
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_titles (user_id, title_id, status, rating, is_favorite, watched_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, title_id) DO UPDATE SET
			status = excluded.status,
			rating = excluded.rating,
			is_favorite = excluded.is_favorite,
			watched_at = excluded.watched_at,
			updated_at = excluded.updated_at`,
		ut.UserID, ut.TitleID, status, rating, ut.IsFavorite, watchedAt,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting user title: %w", err)
	}
	return nil
}

// --- Taste profile queries ---

// GetUserTitleStats aggregates one user's catalog interactions.
// A user with no records gets all-zero stats, not an error.
func (s *Store) GetUserTitleStats(ctx context.Context, userID int64) (TitleStats, error) {
	var st TitleStats
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'watched' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'watchlist' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_favorite = 1 THEN 1 ELSE 0 END), 0),
			AVG(CAST(rating AS REAL))
		FROM user_titles
		WHERE user_id = ?`, userID,
	).Scan(&st.TotalTitles, &st.WatchedCount, &st.WatchlistCount, &st.FavoriteCount, &avg)
	if err != nil {
		return TitleStats{}, fmt.Errorf("querying title stats: %w", err)
	}
	if avg.Valid {
		st.AvgRating = avg.Float64
	}
	return st, nil
}

// GetTopGenres returns the user's most frequent genres among titles that are
// watched or favorited. Plain watchlist entries carry no taste signal.
// Ordered by count descending, ties broken alphabetically.
func (s *Store) GetTopGenres(ctx context.Context, userID int64, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.name
		FROM user_titles ut
		INNER JOIN title_genres tg ON ut.title_id = tg.title_id
		INNER JOIN genres g ON g.genre_id = tg.genre_id
		WHERE ut.user_id = ?
		  AND (ut.status = 'watched' OR ut.is_favorite = 1)
		GROUP BY g.name
		ORDER BY COUNT(*) DESC, g.name ASC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top genres: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		genres = append(genres, name)
	}
	return genres, rows.Err()
}

// ListUserTitles returns the user's catalog interactions joined with title
// metadata, most significant first (favorites, then highest rated, then most
// recently watched or updated), capped at limit.
func (s *Store) ListUserTitles(ctx context.Context, userID int64, limit int) ([]CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			t.title_id,
			t.title,
			t.title_type,
			t.release_year,
			COALESCE((
				SELECT group_concat(name, ', ')
				FROM (
					SELECT g.name AS name
					FROM title_genres tg
					INNER JOIN genres g ON g.genre_id = tg.genre_id
					WHERE tg.title_id = t.title_id
					ORDER BY g.name
				)
			), ''),
			ut.rating,
			ut.is_favorite,
			ut.status
		FROM user_titles ut
		INNER JOIN titles t ON ut.title_id = t.title_id
		WHERE ut.user_id = ?
		ORDER BY
			ut.is_favorite DESC,
			ut.rating DESC NULLS LAST,
			ut.watched_at DESC NULLS LAST,
			ut.updated_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying user titles: %w", err)
	}
	defer rows.Close()

	var items []CatalogItem
	for rows.Next() {
		var item CatalogItem
		var rating sql.NullInt64
		var status sql.NullString
		if err := rows.Scan(&item.TitleID, &item.Title, &item.TitleType,
			&item.ReleaseYear, &item.Genres, &rating, &item.IsFavorite, &status); err != nil {
			return nil, err
		}
		if rating.Valid {
			item.Rating = int(rating.Int64)
		}
		item.Status = status.String
		items = append(items, item)
	}
	return items, rows.Err()
}
