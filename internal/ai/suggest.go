package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"lifequest/internal/config"
	"lifequest/internal/engine"
)

// BaselineXP is what a suggestion is worth when the model answers with
// something we cannot read.
const BaselineXP = 10

// MaxSuggestedXP caps what a single suggestion may award.
const MaxSuggestedXP = 300

// SuggestRequest describes the effort to be rewarded.
type SuggestRequest struct {
	Level  int
	Quests []string // open quest titles, most relevant first
	Effort string   // optional free text
}

// Suggestion is the reward proposed by the model. Gold, Difficulty and Rank
// are labels for display only; gold is always paid by the XP ledger.
type Suggestion struct {
	XP         int             `json:"xp"`
	Feedback   string          `json:"feedback"`
	Category   engine.Category `json:"category,omitempty"`
	Gold       *int            `json:"gold,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	Rank       string          `json:"rank,omitempty"`
	Fallback   bool            `json:"-"` // the baseline was substituted
}

// Suggester proposes rewards. Implementations return ErrRateLimited when the
// provider is throttling.
type Suggester interface {
	Suggest(ctx context.Context, req SuggestRequest) (*Suggestion, error)
}

type GeminiSuggester struct {
	*caller
}

func NewGeminiSuggester(gen Generator, cfg config.AIConfig, log *zap.Logger) *GeminiSuggester {
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiSuggester{caller: newCaller(gen, cfg.Model, cfg.MaxRetries, cfg.Cooldown, log.Named("suggest"))}
}

const suggestInstruction = `You are the game master of a real-life RPG. The player reports effort and you grant experience points.
Answer with JSON only. xp is a whole number between 0 and 300: 5-20 for small chores, 25-60 for solid work, 100+ only for exceptional days.
feedback is one or two encouraging sentences in second person.`

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"xp":         {Type: genai.TypeInteger, Description: "experience points to award"},
		"feedback":   {Type: genai.TypeString, Description: "short encouraging feedback"},
		"category":   {Type: genai.TypeString, Description: "life area: fitness, study, reading, work, mindfulness, health, social or chores"},
		"gold":       {Type: genai.TypeInteger, Description: "gold the effort is worth"},
		"difficulty": {Type: genai.TypeString, Enum: []string{"easy", "medium", "hard", "boss"}},
		"rank":       {Type: genai.TypeString, Description: "a playful title for the effort"},
	},
	Required: []string{"xp", "feedback"},
}

func (s *GeminiSuggester) Suggest(ctx context.Context, req SuggestRequest) (*Suggestion, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(suggestInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    suggestionSchema,
	}
	resp, err := s.generate(ctx, genai.Text(suggestPrompt(req)), cfg)
	if err != nil {
		return nil, err
	}

	sug, err := parseSuggestion(resp.Text())
	if err != nil {
		s.log.Warn("unreadable suggestion, using baseline", zap.Error(err))
		return &Suggestion{XP: BaselineXP, Feedback: "Nice work. Every step counts.", Fallback: true}, nil
	}
	s.log.Info("suggestion received", zap.Int("xp", sug.XP), zap.String("category", string(sug.Category)))
	return sug, nil
}

func suggestPrompt(req SuggestRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Player level: %d\n", req.Level)
	if len(req.Quests) > 0 {
		sb.WriteString("Open quests:\n")
		for _, q := range req.Quests {
			fmt.Fprintf(&sb, "- %s\n", q)
		}
	}
	if e := strings.TrimSpace(req.Effort); e != "" {
		fmt.Fprintf(&sb, "What I did: %s\n", e)
	} else {
		sb.WriteString("Suggest a reward for steady progress on my open quests.\n")
	}
	return sb.String()
}

// parseSuggestion reads the model's JSON answer. XP may arrive as a float and
// is rounded, then clamped to [0, MaxSuggestedXP].
func parseSuggestion(text string) (*Suggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var raw struct {
		XP         *float64 `json:"xp"`
		Feedback   string   `json:"feedback"`
		Category   string   `json:"category"`
		Gold       *float64 `json:"gold"`
		Difficulty string   `json:"difficulty"`
		Rank       string   `json:"rank"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}
	if raw.XP == nil {
		return nil, fmt.Errorf("decode suggestion: missing xp")
	}

	sug := &Suggestion{
		XP:         clampRound(*raw.XP),
		Feedback:   strings.TrimSpace(raw.Feedback),
		Category:   engine.ParseCategory(raw.Category),
		Difficulty: raw.Difficulty,
		Rank:       raw.Rank,
	}
	if raw.Gold != nil {
		g := clampRound(*raw.Gold)
		sug.Gold = &g
	}
	return sug, nil
}

func clampRound(f float64) int {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= MaxSuggestedXP:
		return MaxSuggestedXP
	default:
		return int(math.Round(f))
	}
}

// Apply pays a suggestion out through the regular XP ledger.
func Apply(ctx context.Context, svc *engine.Service, sug *Suggestion, reason string) (*engine.AwardResult, error) {
	if reason == "" {
		reason = "ai suggestion"
	}
	return svc.AwardXP(ctx, engine.AwardInput{
		Amount:   min(max(0, sug.XP), MaxSuggestedXP),
		Category: sug.Category,
		Reason:   reason,
		Source:   engine.SourceAI,
	})
}

// Request builds a SuggestRequest from the current status.
func Request(st *engine.Status, effort string) SuggestRequest {
	req := SuggestRequest{Level: st.Progression.Level, Effort: effort}
	for i, q := range st.OpenQuests {
		if i == 5 {
			break
		}
		req.Quests = append(req.Quests, q.Title)
	}
	return req
}
