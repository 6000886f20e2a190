package bridge

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"lifequest/internal/engine"
)

type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
)

type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Enum        []string
}

// Action is one named state change the assistant may request.
type Action struct {
	Name        string
	Description string
	Params      []Param
	handle      func(ctx context.Context, args Args) (string, error)
}

// Result reports what a dispatched action did. Dispatch never returns an error:
// unknown actions are Ignored and handler failures land in Err.
type Result struct {
	Action  string
	Message string
	Ignored bool
	Err     error
}

func (r Result) OK() bool { return !r.Ignored && r.Err == nil }

// Bridge maps action names to engine operations.
type Bridge struct {
	svc     *engine.Service
	log     *zap.Logger
	actions map[string]Action
}

func New(svc *engine.Service, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bridge{svc: svc, log: log, actions: map[string]Action{}}
	for _, a := range b.catalogue() {
		b.actions[a.Name] = a
	}
	return b
}

// Actions lists the catalogue sorted by name.
func (b *Bridge) Actions() []Action {
	out := make([]Action, 0, len(b.actions))
	for _, a := range b.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (b *Bridge) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	name = strings.TrimSpace(name)
	a, ok := b.actions[name]
	if !ok {
		b.log.Warn("ignoring unknown action", zap.String("action", name))
		return Result{Action: name, Ignored: true, Message: fmt.Sprintf("unknown action %q ignored", name)}
	}

	msg, err := a.handle(ctx, Args(args))
	if err != nil {
		b.log.Warn("action failed", zap.String("action", name), zap.Error(err))
		return Result{Action: name, Err: err, Message: err.Error()}
	}
	b.log.Info("action executed", zap.String("action", name))
	return Result{Action: name, Message: msg}
}
