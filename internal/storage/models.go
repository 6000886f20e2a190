package storage

import "time"

type Snapshot struct {
	Key       string
	Body      []byte
	UpdatedAt time.Time
}

type RewardEntry struct {
	ID         int64
	AwardedAt  time.Time
	Source     string
	Reason     string
	Category   string
	Amount     int
	GoldDelta  int
	LevelAfter int
}
