package ranking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDisabled is returned by rankers that keep no data.
var ErrDisabled = errors.New("ranking disabled")

const (
	defaultPrefix = "smtlite:ranking"
	winsSuffix    = "wins"
	battlesSuffix = "battles"
)

// Entry is one leaderboard row.
type Entry struct {
	Template string `json:"template"`
	Wins     int    `json:"wins"`
	Battles  int    `json:"battles"`
}

// Ranker keeps a live win leaderboard keyed by actor template.
type Ranker interface {
	RecordOutcome(ctx context.Context, winner, loser string) error
	Top(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Options configures the Redis connection.
type Options struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// RedisRanker stores wins and battles in two sorted sets.
type RedisRanker struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis returns a ranker backed by the Redis server in opts. It does
// not connect until first use; call Ping to check reachability.
func NewRedis(opts Options) *RedisRanker {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisRanker{
		rdb: redis.NewClient(&redis.Options{
			Addr:        opts.Address,
			Password:    opts.Password,
			DB:          opts.DB,
			DialTimeout: 2 * time.Second,
		}),
		prefix: prefix,
	}
}

// WinsKey is the sorted set holding win counts.
func (r *RedisRanker) WinsKey() string { return r.prefix + ":" + winsSuffix }

// BattlesKey is the sorted set holding battle counts.
func (r *RedisRanker) BattlesKey() string { return r.prefix + ":" + battlesSuffix }

// Ping checks the connection.
func (r *RedisRanker) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

type increment struct {
	key    string
	by     float64
	member string
}

// increments lists the sorted-set updates for one finished battle. A mirror
// match counts as a single battle.
func (r *RedisRanker) increments(winner, loser string) []increment {
	var out []increment
	if winner != "" {
		out = append(out,
			increment{r.WinsKey(), 1, winner},
			increment{r.BattlesKey(), 1, winner})
	}
	if loser != "" && loser != winner {
		// keep losers on the board with zero wins
		out = append(out,
			increment{r.WinsKey(), 0, loser},
			increment{r.BattlesKey(), 1, loser})
	}
	return out
}

// RecordOutcome credits winner with a win and both sides with a battle.
func (r *RedisRanker) RecordOutcome(ctx context.Context, winner, loser string) error {
	pipe := r.rdb.TxPipeline()
	for _, inc := range r.increments(winner, loser) {
		pipe.ZIncrBy(ctx, inc.key, inc.by, inc.member)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// Top returns the limit templates with the most wins.
func (r *RedisRanker) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}
	zs, err := r.rdb.ZRevRangeWithScores(ctx, r.WinsKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read ranking: %w", err)
	}
	if len(zs) == 0 {
		return []Entry{}, nil
	}

	pipe := r.rdb.Pipeline()
	battles := make([]*redis.FloatCmd, len(zs))
	for i, z := range zs {
		battles[i] = pipe.ZScore(ctx, r.BattlesKey(), fmt.Sprint(z.Member))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read battle counts: %w", err)
	}

	out := make([]Entry, 0, len(zs))
	for i, z := range zs {
		n, _ := battles[i].Result()
		out = append(out, Entry{Template: fmt.Sprint(z.Member), Wins: int(z.Score), Battles: int(n)})
	}
	return out, nil
}

func (r *RedisRanker) Close() error { return r.rdb.Close() }

// Noop discards outcomes and has no leaderboard.
type Noop struct{}

func (Noop) RecordOutcome(context.Context, string, string) error { return nil }
func (Noop) Top(context.Context, int) ([]Entry, error)          { return nil, ErrDisabled }
func (Noop) Close() error                                       { return nil }
