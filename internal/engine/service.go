package engine

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lifequest/internal/storage"
)

// Service owns the persisted snapshot. Every mutation loads the snapshot,
// applies one event and writes it back together with its reward log entries in
// a single transaction. Mutations are serialized.
type Service struct {
	mu      sync.Mutex
	db      *sql.DB
	balance Balance
	log     *zap.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithBalance(b Balance) Option {
	return func(s *Service) { s.balance = b }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now; tests use it to walk through calendar days.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:      db,
		balance: DefaultBalance(),
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Balance() Balance { return s.balance }

func (s *Service) Today() Date { return Today(s.now) }

// session is the working state of one mutation.
type session struct {
	snap   Snapshot
	today  Date
	now    time.Time
	awards []storage.RewardEntry
}

// award runs the ledger and queues the matching reward log entry.
func (ss *session) award(amount int, cat Category, src RewardSource, reason string) AwardResult {
	p, res := AwardXP(ss.snap.Progression, amount, cat)
	ss.snap.Progression = p
	ss.awards = append(ss.awards, storage.RewardEntry{
		AwardedAt:  ss.now,
		Source:     string(src),
		Reason:     reason,
		Category:   string(cat),
		Amount:     amount,
		GoldDelta:  res.GoldDelta,
		LevelAfter: res.LevelAfter,
	})
	return res
}

func (s *Service) load(ctx context.Context, q storage.DBTX) (Snapshot, error) {
	row, err := storage.NewSnapshotRepo(q).Get(ctx, storage.MainSnapshotKey)
	if err != nil {
		return Snapshot{}, err
	}
	if row == nil {
		return NewSnapshot(s.balance), nil
	}
	snap, problems := DecodeSnapshot(row.Body, s.balance)
	for _, p := range problems {
		s.log.Warn("snapshot field reset to default", zap.String("problem", p))
	}
	return snap, nil
}

// Snapshot returns the current persisted state.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	return s.load(ctx, s.db)
}

// mutate applies fn to the current snapshot. If fn returns an error nothing is written.
func (s *Service) mutate(ctx context.Context, fn func(ss *session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		snap, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		now := s.now()
		ss := &session{snap: snap, today: DateOf(now.In(time.Local)), now: now}
		if err := fn(ss); err != nil {
			return err
		}

		body, err := EncodeSnapshot(ss.snap)
		if err != nil {
			return err
		}
		if err := storage.NewSnapshotRepo(tx).Put(ctx, storage.MainSnapshotKey, body, now); err != nil {
			return err
		}
		rewards := storage.NewRewardRepo(tx)
		for _, e := range ss.awards {
			if _, err := rewards.Insert(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// Status is the read-only view shown by `lq status` and the board.
type Status struct {
	Progression  Progression
	Rank         Rank
	NextRank     *Rank
	RankProgress float64
	Today        Date
	Habits       []Habit
	OpenQuests   []Quest
	Hydration    Hydration
	ClassesToday []Class
}

func (s *Service) Status(ctx context.Context) (*Status, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	today := s.Today()

	st := &Status{
		Progression:  snap.Progression,
		Rank:         ResolveRank(snap.Progression.Level),
		RankProgress: RankProgress(snap.Progression.Level),
		Today:        today,
		Habits:       snap.SortedHabits(),
		Hydration:    snap.Hydration,
		ClassesToday: ClassesOn(snap.Timetable, today),
	}
	if next, ok := NextRank(snap.Progression.Level); ok {
		st.NextRank = &next
	}
	if !st.Hydration.Date.SameDay(today) {
		st.Hydration.Glasses = 0
		st.Hydration.Paid = false
		st.Hydration.Date = today
	}
	for _, q := range snap.Quests {
		if !q.Done {
			st.OpenQuests = append(st.OpenQuests, q)
		}
	}
	return st, nil
}

// AwardInput is a reward event from any source: a manual command, a quest,
// a habit or the AI collaborator.
type AwardInput struct {
	Amount   int
	Category Category
	Reason   string
	Source   RewardSource
}

func (s *Service) AwardXP(ctx context.Context, in AwardInput) (*AwardResult, error) {
	src := in.Source
	if src == "" {
		src = SourceManual
		if in.Amount < 0 {
			src = SourcePenalty
		}
	}

	var res AwardResult
	err := s.mutate(ctx, func(ss *session) error {
		res = ss.award(in.Amount, in.Category, src, strings.TrimSpace(in.Reason))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("xp awarded",
		zap.Int("amount", in.Amount),
		zap.String("category", string(in.Category)),
		zap.String("source", string(src)),
		zap.Int("level", res.LevelAfter),
		zap.Int("levels_gained", res.LevelsGained))
	return &res, nil
}

type SpendResult struct {
	Cost      int
	GoldAfter int
}

// SpendGold buys something for cost gold. An InsufficientGoldError leaves the
// snapshot unwritten.
func (s *Service) SpendGold(ctx context.Context, cost int, item string) (*SpendResult, error) {
	var res SpendResult
	err := s.mutate(ctx, func(ss *session) error {
		p, err := SpendGold(ss.snap.Progression, cost)
		if err != nil {
			return err
		}
		ss.snap.Progression = p
		res = SpendResult{Cost: cost, GoldAfter: p.Gold}
		return nil
	})
	if err != nil {
		s.log.Info("gold spend rejected", zap.Int("cost", cost), zap.String("item", item), zap.Error(err))
		return nil, err
	}
	s.log.Info("gold spent", zap.Int("cost", cost), zap.String("item", item), zap.Int("gold", res.GoldAfter))
	return &res, nil
}

// Reset puts the character sheet and every tracker back to first-use defaults.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewSnapshotRepo(tx).Delete(ctx, storage.MainSnapshotKey); err != nil {
			return err
		}
		return storage.NewRewardRepo(tx).Clear(ctx)
	})
	if err != nil {
		return err
	}
	s.log.Info("progress reset")
	return nil
}

func (s *Service) History(ctx context.Context, limit int) ([]storage.RewardEntry, error) {
	return storage.NewRewardRepo(s.db).ListRecent(ctx, limit)
}
