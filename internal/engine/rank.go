package engine

// Rank is the cosmetic tier derived from a level.
type Rank struct {
	MinLevel int
	Tier     string
	SubRank  string // empty for tiers without divisions
	Icon     string
	Color    string // ANSI 256 colour code
}

func (r Rank) Title() string {
	if r.SubRank == "" {
		return r.Tier
	}
	return r.Tier + " " + r.SubRank
}

// TopRankSpan stands in for the width of the missing next tier above the top one.
const TopRankSpan = 100

// rankTable is ordered by strictly decreasing MinLevel and ends with the
// MinLevel 0 floor, so every level resolves.
var rankTable = []Rank{
	{MinLevel: 100, Tier: "Legend", Icon: "👑", Color: "226"},
	{MinLevel: 75, Tier: "Grandmaster", Icon: "🐉", Color: "201"},
	{MinLevel: 50, Tier: "Master", Icon: "🔮", Color: "129"},
	{MinLevel: 45, Tier: "Diamond", SubRank: "I", Icon: "💎", Color: "51"},
	{MinLevel: 40, Tier: "Diamond", SubRank: "II", Icon: "💎", Color: "51"},
	{MinLevel: 35, Tier: "Platinum", SubRank: "I", Icon: "🛡️", Color: "159"},
	{MinLevel: 30, Tier: "Platinum", SubRank: "II", Icon: "🛡️", Color: "159"},
	{MinLevel: 25, Tier: "Gold", SubRank: "I", Icon: "🥇", Color: "220"},
	{MinLevel: 20, Tier: "Gold", SubRank: "II", Icon: "🥇", Color: "220"},
	{MinLevel: 15, Tier: "Silver", SubRank: "I", Icon: "🥈", Color: "250"},
	{MinLevel: 10, Tier: "Silver", SubRank: "II", Icon: "🥈", Color: "250"},
	{MinLevel: 5, Tier: "Bronze", SubRank: "I", Icon: "🥉", Color: "130"},
	{MinLevel: 0, Tier: "Bronze", SubRank: "II", Icon: "🥉", Color: "130"},
}

// Ranks returns a copy of the rank table, highest tier first.
func Ranks() []Rank {
	out := make([]Rank, len(rankTable))
	copy(out, rankTable)
	return out
}

func rankIndex(level int) int {
	for i, r := range rankTable {
		if r.MinLevel <= level {
			return i
		}
	}
	return len(rankTable) - 1
}

// ResolveRank returns the highest tier whose MinLevel is at most level.
func ResolveRank(level int) Rank {
	return rankTable[rankIndex(level)]
}

// NextRank returns the tier above the one level resolves to.
func NextRank(level int) (Rank, bool) {
	i := rankIndex(level)
	if i == 0 {
		return Rank{}, false
	}
	return rankTable[i-1], true
}

// RankProgress returns how far level is through its tier, in [0,1].
func RankProgress(level int) float64 {
	cur := ResolveRank(level)
	span := TopRankSpan
	if next, ok := NextRank(level); ok {
		span = next.MinLevel - cur.MinLevel
	}
	f := float64(level-cur.MinLevel) / float64(span)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
