package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrRateLimited is returned while the model provider is throttling us, either
// straight from a 429 or during the cooldown that follows one.
var ErrRateLimited = errors.New("ai: rate limited, try again later")

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("ai: no API key configured (set GEMINI_API_KEY)")

// Generator is the part of the genai models API we use. *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGenerator opens a Gemini API client.
func NewGenerator(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, ErrDisabled
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return client.Models, nil
}

// caller wraps a Generator with retries and the rate-limit cooldown. It is
// shared by the suggester and the assistant.
type caller struct {
	gen        Generator
	model      string
	maxRetries uint
	cooldown   time.Duration
	log        *zap.Logger
	now        func() time.Time
	newBackOff func() backoff.BackOff

	mu            sync.Mutex
	cooldownUntil time.Time
}

func newCaller(gen Generator, model string, maxRetries uint, cooldown time.Duration, log *zap.Logger) *caller {
	if log == nil {
		log = zap.NewNop()
	}
	if maxRetries == 0 {
		maxRetries = 1
	}
	return &caller{
		gen:        gen,
		model:      model,
		maxRetries: maxRetries,
		cooldown:   cooldown,
		log:        log,
		now:        time.Now,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
}

// CoolingDown reports whether calls currently fail fast with ErrRateLimited.
func (c *caller) CoolingDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Before(c.cooldownUntil)
}

func (c *caller) armCooldown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cooldownUntil = c.now().Add(c.cooldown)
}

func (c *caller) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if c.CoolingDown() {
		return nil, ErrRateLimited
	}

	attempt := 0
	op := func() (*genai.GenerateContentResponse, error) {
		attempt++
		resp, err := c.gen.GenerateContent(ctx, c.model, contents, cfg)
		if err == nil {
			return resp, nil
		}
		err = classify(err)
		c.log.Debug("generate failed", zap.Int("attempt", attempt), zap.Error(err))
		return nil, err
	}

	resp, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.maxRetries))
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			c.armCooldown()
			c.log.Warn("model rate limited", zap.Duration("cooldown", c.cooldown))
			return nil, ErrRateLimited
		}
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return resp, nil
}

// classify marks errors that must not be retried as permanent. 429 becomes
// ErrRateLimited; other 4xx and context errors are final.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return backoff.Permanent(err)
	}
	code := apiErrorCode(err)
	switch {
	case code == http.StatusTooManyRequests:
		return backoff.Permanent(ErrRateLimited)
	case code >= 400 && code < 500:
		return backoff.Permanent(err)
	default:
		return err
	}
}

func apiErrorCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}
