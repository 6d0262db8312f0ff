package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DanKadrios/SMTLite/internal/battle"
	"github.com/DanKadrios/SMTLite/internal/engine"
	"github.com/DanKadrios/SMTLite/internal/game"
	"github.com/DanKadrios/SMTLite/internal/ranking"
)

// Catalog is the static data a battle needs. *catalog.Catalog satisfies it.
type Catalog interface {
	engine.MoveSource
	Template(key string) (game.Template, bool)
	Templates() []game.Template
	Moves() []game.Move
}

// RecordRepo persists finished battles. storage.Repository satisfies it.
type RecordRepo interface {
	SaveBattleRecord(rec *game.BattleRecord) error
	GetBattleRecord(battleID string) (*game.BattleRecord, error)
	ListRecentBattles(limit int) ([]game.BattleRecord, error)
	GetTemplateStats(templateKey string) (*game.TemplateStats, error)
	GetTopTemplates(limit int) ([]game.TemplateStats, error)
}

// Options configures a BattleService.
type Options struct {
	Catalog   Catalog
	Repo      RecordRepo
	Ranker    ranking.Ranker
	Scheduler battle.Scheduler
	TurnDelay time.Duration
	// SessionTTL is how long an idle session survives the reaper.
	SessionTTL time.Duration
	// NewDice builds the randomness source for each session.
	NewDice func() engine.Dice
	// NewID builds session identifiers.
	NewID func() string
}

// BattleService owns the live battle sessions.
type BattleService struct {
	catalog Catalog
	repo    RecordRepo
	ranker  ranking.Ranker
	sched   battle.Scheduler
	delay   time.Duration
	ttl     time.Duration
	newDice func() engine.Dice
	newID   func() string

	mu       sync.RWMutex
	sessions map[string]*battle.Session
}

// New returns a service with no live sessions.
func New(opts Options) *BattleService {
	if opts.Ranker == nil {
		opts.Ranker = ranking.Noop{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = battle.TimerScheduler{}
	}
	if opts.NewDice == nil {
		opts.NewDice = engine.NewDice
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	return &BattleService{
		catalog:  opts.Catalog,
		repo:     opts.Repo,
		ranker:   opts.Ranker,
		sched:    opts.Scheduler,
		delay:    opts.TurnDelay,
		ttl:      opts.SessionTTL,
		newDice:  opts.NewDice,
		newID:    opts.NewID,
		sessions: map[string]*battle.Session{},
	}
}

// Catalog exposes the static data the service was built with.
func (s *BattleService) Catalog() Catalog { return s.catalog }

func (s *BattleService) session(id string) (*battle.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrBattleNotFound
	}
	return sess, nil
}

// ActiveBattles reports how many sessions are live.
func (s *BattleService) ActiveBattles() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
