package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"lifequest/internal/bridge"
	"lifequest/internal/config"
)

const maxToolRounds = 4

const assistantInstruction = `You are the companion of a real-life RPG player. You can change their quest log, habits, hydration and gold with the provided tools.
Use a tool only when the player clearly asks for that change. Keep answers short and friendly. Markdown is allowed.`

// Reply is the assistant's answer plus every action it executed.
type Reply struct {
	Text    string
	Actions []bridge.Result
}

// Assistant is a conversational front end that can mutate state through the
// action bridge via function calling.
type Assistant struct {
	*caller
	bridge *bridge.Bridge
	tools  []*genai.Tool
}

func NewAssistant(gen Generator, cfg config.AIConfig, br *bridge.Bridge, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{
		caller: newCaller(gen, cfg.Model, cfg.MaxRetries, cfg.Cooldown, log.Named("assistant")),
		bridge: br,
		tools:  []*genai.Tool{{FunctionDeclarations: functionDeclarations(br.Actions())}},
	}
}

func functionDeclarations(actions []bridge.Action) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(actions))
	for _, a := range actions {
		params := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
		for _, p := range a.Params {
			s := &genai.Schema{Type: genai.TypeString, Description: p.Description, Enum: p.Enum}
			if p.Type == bridge.ParamInteger {
				s.Type = genai.TypeInteger
			}
			params.Properties[p.Name] = s
			if p.Required {
				params.Required = append(params.Required, p.Name)
			}
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        a.Name,
			Description: a.Description,
			Parameters:  params,
		})
	}
	return out
}

// Ask sends message to the model and runs the function calls it returns until
// it answers in text or the round limit is hit.
func (a *Assistant) Ask(ctx context.Context, message string) (*Reply, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistantInstruction, genai.RoleUser),
		Tools:             a.tools,
	}
	contents := []*genai.Content{genai.NewContentFromText(message, genai.RoleUser)}
	reply := &Reply{}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.generate(ctx, contents, cfg)
		if err != nil {
			return reply, err
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			reply.Text = strings.TrimSpace(resp.Text())
			return reply, nil
		}

		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			res := a.bridge.Dispatch(ctx, call.Name, call.Args)
			reply.Actions = append(reply.Actions, res)
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, functionResponse(res)))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	a.log.Warn("tool round limit reached", zap.Int("actions", len(reply.Actions)))
	return reply, nil
}

func functionResponse(res bridge.Result) map[string]any {
	switch {
	case res.Ignored:
		return map[string]any{"status": "ignored", "message": res.Message}
	case res.Err != nil:
		return map[string]any{"status": "error", "error": res.Err.Error()}
	default:
		return map[string]any{"status": "ok", "result": res.Message}
	}
}
