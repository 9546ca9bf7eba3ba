// Package agent runs the Gemini conversation loop: history in, function
// calls against the tool runtime, natural-language answer out.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/finchat-dev/finchat/internal/history"
	"github.com/finchat-dev/finchat/internal/model"
	"github.com/finchat-dev/finchat/internal/store"
	"github.com/finchat-dev/finchat/internal/tools"
)

const systemPrompt = `You are finchat, a personal finance assistant. Answer
questions about the user's bank transactions and balances using the provided
tools. Amounts are in dollars; negative amounts are money spent. Be concise
and concrete: cite real numbers from tool results, never invent figures.
If the tools return no data, say so plainly.`

// maxToolRounds bounds the function-calling loop so a confused model cannot
// spin forever.
const maxToolRounds = 8

// Agent holds one model client plus the tool runtime it may call.
type Agent struct {
	client     *genai.Client
	model      string
	runtime    *tools.Runtime
	store      store.Store
	maxHistory int
	log        *slog.Logger
	now        func() time.Time
}

// Options configure New beyond its required collaborators.
type Options struct {
	Model      string
	MaxHistory int
	Log        *slog.Logger
}

// New creates an Agent. Model credentials come from the environment
// (GEMINI_API_KEY), matching the client's default resolution.
func New(ctx context.Context, runtime *tools.Runtime, s store.Store, opts Options) (*Agent, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return newWithClient(client, runtime, s, opts), nil
}

func newWithClient(client *genai.Client, runtime *tools.Runtime, s store.Store, opts Options) *Agent {
	if opts.Model == "" {
		opts.Model = "gemini-2.0-flash"
	}
	if opts.MaxHistory == 0 {
		opts.MaxHistory = history.DefaultCapacity
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Agent{
		client:     client,
		model:      opts.Model,
		runtime:    runtime,
		store:      s,
		maxHistory: opts.MaxHistory,
		log:        opts.Log,
		now:        time.Now,
	}
}

// Ask answers one user question, persisting both sides of the exchange to
// the user's bounded history. The user identifier scopes every tool call and
// is never surfaced to the model.
func (a *Agent) Ask(ctx context.Context, userID, question string) (string, error) {
	log := a.loadHistory(ctx, userID)

	contents := historyToContents(log.Messages())
	contents = append(contents, genai.NewContentFromText(question, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Tools: []*genai.Tool{
			{FunctionDeclarations: functionDeclarations()},
		},
	}

	var answer string
	for round := 0; ; round++ {
		if round > maxToolRounds {
			return "", errors.New("model exceeded tool call budget without answering")
		}

		resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, cfg)
		if err != nil {
			return "", fmt.Errorf("generating response: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", errors.New("empty response from model")
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			answer = resp.Text()
			break
		}

		// Echo the model's turn, then answer each call.
		contents = append(contents, resp.Candidates[0].Content)
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			result := a.execute(ctx, userID, call)
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, result))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	log.Append(model.ChatMessage{Role: "user", Content: question, Timestamp: a.now()})
	log.Append(model.ChatMessage{Role: "model", Content: answer, Timestamp: a.now()})
	if err := a.store.PutChatHistory(ctx, userID, log.Messages()); err != nil {
		// Losing a history write degrades recall, not the answer.
		a.log.Warn("persisting chat history failed", "user_id", userID, "error", err)
	}
	return answer, nil
}

// execute runs one tool call. Failures become an error payload for the model
// to explain, not a crash of the conversation.
func (a *Agent) execute(ctx context.Context, userID string, call *genai.FunctionCall) map[string]any {
	result, err := a.runtime.Call(ctx, call.Name, userID, call.Args)
	if err != nil {
		a.log.Warn("tool call failed", "tool", call.Name, "user_id", userID, "error", err)
		return map[string]any{"error": err.Error()}
	}
	return result
}

func (a *Agent) loadHistory(ctx context.Context, userID string) *history.Log {
	msgs, err := a.store.GetChatHistory(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		a.log.Warn("loading chat history failed", "user_id", userID, "error", err)
	}
	return history.FromMessages(a.maxHistory, msgs)
}

// historyToContents converts persisted messages into model turns.
func historyToContents(msgs []model.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		var role genai.Role = genai.RoleUser
		if m.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}
