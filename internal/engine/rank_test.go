package engine

import "testing"

func TestRankTableShape(t *testing.T) {
	ranks := Ranks()
	for i := 1; i < len(ranks); i++ {
		if ranks[i].MinLevel >= ranks[i-1].MinLevel {
			t.Fatalf("rank table not strictly decreasing at %d: %d >= %d", i, ranks[i].MinLevel, ranks[i-1].MinLevel)
		}
	}
	if last := ranks[len(ranks)-1]; last.MinLevel != 0 {
		t.Fatalf("floor tier MinLevel=%d, want 0", last.MinLevel)
	}
}

func TestResolveRankBoundaries(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{-5, "Bronze II"},
		{0, "Bronze II"},
		{1, "Bronze II"},
		{4, "Bronze II"},
		{5, "Bronze I"},
		{10, "Silver II"},
		{49, "Diamond I"},
		{50, "Master"},
		{99, "Grandmaster"},
		{100, "Legend"},
		{1000, "Legend"},
	}
	for _, tc := range cases {
		if got := ResolveRank(tc.level).Title(); got != tc.want {
			t.Fatalf("ResolveRank(%d)=%q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestResolveRankMonotone(t *testing.T) {
	prev := ResolveRank(0).MinLevel
	for level := 1; level <= 250; level++ {
		cur := ResolveRank(level).MinLevel
		if cur < prev {
			t.Fatalf("rank went down between level %d and %d", level-1, level)
		}
		prev = cur
	}
}

func TestRankProgress(t *testing.T) {
	if got := RankProgress(0); got != 0 {
		t.Fatalf("RankProgress(0)=%v, want 0", got)
	}
	// Bronze I spans 5..10.
	if got := RankProgress(7); got != 0.4 {
		t.Fatalf("RankProgress(7)=%v, want 0.4", got)
	}
	// Legend has no tier above: fallback span of 100.
	if got := RankProgress(150); got != 0.5 {
		t.Fatalf("RankProgress(150)=%v, want 0.5", got)
	}
	if got := RankProgress(500); got != 1 {
		t.Fatalf("RankProgress(500)=%v, want clamp to 1", got)
	}
	if got := RankProgress(-3); got != 0 {
		t.Fatalf("RankProgress(-3)=%v, want clamp to 0", got)
	}
	if _, ok := NextRank(100); ok {
		t.Fatalf("NextRank(100) should not exist")
	}
	if next, ok := NextRank(12); !ok || next.Title() != "Silver I" {
		t.Fatalf("NextRank(12)=%q,%v want Silver I", next.Title(), ok)
	}
}
