package cache

import (
	"context"
	"database/sql"
	"delivery-time-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// SQLite backed cache for model outputs. Expiry is stored as Unix
// milliseconds.
type SqliteEstimateCache struct {
	DB  *sql.DB
	TTL time.Duration
	Now func() time.Time
}

func NewSqliteEstimateCache(db *sql.DB, ttl time.Duration) *SqliteEstimateCache {
	return &SqliteEstimateCache{DB: db, TTL: ttl, Now: time.Now}
}

// Fetch a cached prediction. Expired rows count as a miss.
func (s *SqliteEstimateCache) Get(ctx context.Context, key string) (_ float64, _ bool, err error) {
	defer obs.Time(ctx, "estimate.cache.Get")(&err)

	if s.DB == nil {
		return 0, false, errors.New("estimate cache: db is nil")
	}
	if key == "" {
		return 0, false, errors.New("get estimate cache: key must not be empty")
	}

	q := `
	SELECT minutes
	FROM estimate_cache
	WHERE cache_key = ?
		AND expires_at > ?;
	`

	var minutes float64
	err = s.DB.QueryRowContext(ctx, q, key, s.Now().UnixMilli()).Scan(&minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get estimate cache: query estimate_cache table: %w", err)
	}

	return minutes, true, nil
}

// Store a prediction, replacing any previous value and expiry for the key.
func (s *SqliteEstimateCache) Set(ctx context.Context, key string, minutes float64) (err error) {
	defer obs.Time(ctx, "estimate.cache.Set")(&err)

	if s.DB == nil {
		return errors.New("estimate cache: db is nil")
	}
	if key == "" {
		return errors.New("set estimate cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO estimate_cache (
		cache_key,
		minutes,
		expires_at
	)
	VALUES (?, ?, ?)
	`
	if _, err := s.DB.ExecContext(ctx, q, key, minutes, s.Now().Add(s.TTL).UnixMilli()); err != nil {
		return fmt.Errorf("set estimate cache key=%q: %w", key, err)
	}

	return nil
}
