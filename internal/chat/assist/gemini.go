package assist

import (
	"context"
	"fmt"
	"time"

	"scheduling-assistant/internal/model"
	"scheduling-assistant/pkg/gemini"
	pkgLog "scheduling-assistant/pkg/log"
)

const (
	// DefaultTimeout is the hard wall-clock bound around one model call.
	DefaultTimeout = 10 * time.Second

	// DefaultRetryAttempts bounds the structured extraction path.
	DefaultRetryAttempts = 3

	// DefaultHistoryLimit caps how many turns of rolling history are sent.
	DefaultHistoryLimit = 10
)

// FallbackMessage is the fixed apology returned when the model call times
// out or errors. It carries action "none" so nothing downstream acts on it.
const FallbackMessage = "I'm having trouble responding right now. Please try again in a moment."

// clarifyMessage is the degraded reply for malformed model output.
const clarifyMessage = "I didn't quite catch that. Could you tell me what you'd like to schedule, and when?"

// Config tunes the Gemini-backed adapter. Zero values fall back to the
// package defaults.
type Config struct {
	Timeout       time.Duration
	RetryAttempts int
	HistoryLimit  int
}

type geminiAdapter struct {
	l             pkgLog.Logger
	client        *gemini.Client
	timeout       time.Duration
	retryAttempts int
	historyLimit  int
	now           func() time.Time
}

// NewGeminiAdapter wraps a Gemini client in the assist contract.
func NewGeminiAdapter(l pkgLog.Logger, client *gemini.Client, cfg Config) Adapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	return &geminiAdapter{
		l:             l,
		client:        client,
		timeout:       cfg.Timeout,
		retryAttempts: cfg.RetryAttempts,
		historyLimit:  cfg.HistoryLimit,
		now:           time.Now,
	}
}

// FallbackReply is the safe built-in response used when the model is
// unavailable. No task can ever result from it.
func FallbackReply() Reply {
	return Reply{AssistantMessage: FallbackMessage, Action: ActionNone}
}

// Converse sends the message with rolling history to the model under the
// hard timeout. Transport errors and timeouts degrade to FallbackReply;
// malformed output degrades to a clarification reply. The state machine
// never sees an error from this path.
func (a *geminiAdapter) Converse(ctx context.Context, message string, history []model.ConversationTurn) Reply {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	now := a.now()
	system := ConverseSystemPrompt + buildTimeContext(now.Format(time.RFC3339), now.Weekday().String())

	req := gemini.GenerateRequest{
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: system}}},
		Contents:          a.buildContents(message, history),
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.2, // low temperature for deterministic JSON output
			MaxOutputTokens: 2048,
		},
	}

	resp, err := a.client.GenerateContent(ctx, req)
	if err != nil {
		a.l.Warnf(ctx, "assist: model call failed, degrading to fallback: %v", err)
		return FallbackReply()
	}

	reply, err := ParseReply(resp.Text())
	if err != nil {
		a.l.Warnf(ctx, "assist: malformed model output, degrading to clarification: %v", err)
		return Reply{AssistantMessage: clarifyMessage, Action: ActionClarify}
	}

	return reply
}

// ExtractScheduling runs the structured extraction contract. Each failed
// attempt is logged and the loop proceeds; after the attempts are exhausted
// the caller gets ErrUnparseable.
func (a *geminiAdapter) ExtractScheduling(ctx context.Context, message string) (model.SchedulingExtraction, error) {
	var lastErr error

	for attempt := 1; attempt <= a.retryAttempts; attempt++ {
		ex, err := a.extractOnce(ctx, message)
		if err == nil {
			return ex, nil
		}
		lastErr = err
		a.l.Warnf(ctx, "assist: extraction attempt %d/%d failed: %v", attempt, a.retryAttempts, err)
	}

	return model.SchedulingExtraction{}, fmt.Errorf("%w: %v", ErrUnparseable, lastErr)
}

func (a *geminiAdapter) extractOnce(ctx context.Context, message string) (model.SchedulingExtraction, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req := gemini.GenerateRequest{
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: ExtractionSystemPrompt}}},
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: message}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.1,
			MaxOutputTokens: 1024,
		},
	}

	resp, err := a.client.GenerateContent(ctx, req)
	if err != nil {
		return model.SchedulingExtraction{}, err
	}

	return ParseExtraction(resp.Text())
}

// buildContents maps the rolling history plus the new message onto the
// Gemini conversation format.
func (a *geminiAdapter) buildContents(message string, history []model.ConversationTurn) []gemini.Content {
	if len(history) > a.historyLimit {
		history = history[len(history)-a.historyLimit:]
	}

	contents := make([]gemini.Content, 0, len(history)+1)
	for _, turn := range history {
		role := "user"
		if turn.Role == model.RoleAssistant {
			role = "model"
		}
		contents = append(contents, gemini.Content{
			Role:  role,
			Parts: []gemini.Part{{Text: turn.Content}},
		})
	}

	contents = append(contents, gemini.Content{
		Role:  "user",
		Parts: []gemini.Part{{Text: message}},
	})

	return contents
}
