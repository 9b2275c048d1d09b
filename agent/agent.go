/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"

	"github.com/octoagent/octoagent/llm"
	"github.com/octoagent/octoagent/llm/retry"
	"github.com/octoagent/octoagent/metrics"
	"github.com/octoagent/octoagent/structured"
)

// systemInstruction constrains the model to the two GitHub operations and the
// structured response contract. The schema placeholder is filled in New.
const systemInstruction = `You are a specialized assistant for GitHub operations. ` +
	`Your sole purpose is to either use the 'read_github_issue' tool to read the contents of a GitHub issue, ` +
	`or use the 'open_github_pr' tool to open a Pull Request on GitHub. ` +
	`If the user asks about anything other than these two operations, ` +
	`politely state that you cannot help with that topic and can only assist with the aforementioned operations. ` +
	`Do not attempt to answer unrelated questions or use tools for other purposes. ` +
	`Make sure that you are explicitly given all the necessary input parameters for the tools you can use; ` +
	`if one or more parameters are missing, ask the user to provide them. ` +
	`Never use your tools unless the user explicitly gave you all the necessary input parameters for those tools. ` +
	`When answering, set response status to input_required if the user needs to provide more information to complete the request. ` +
	`Set response status to error if there is an error while processing the request. ` +
	`Set response status to completed if the request is complete. ` +
	"Your final answer must be a single JSON object matching this schema, with no text outside it:\n%s"

// maxModelIterations bounds the plan/call/observe loop within one turn so a
// model stuck re-issuing tool calls cannot spin forever.
const maxModelIterations = 10

// Toolset is the closed set of operations the model may invoke.
type Toolset interface {
	// Definitions returns the tool schemas advertised to the model.
	Definitions() []llm.Definition
	// Execute runs one tool call and returns the observation payload.
	Execute(ctx context.Context, call llm.ToolCall) map[string]any
}

// Agent runs the per-turn plan -> call tool -> observe -> respond loop over
// an injected model, toolset, and conversation store.
type Agent struct {
	model        llm.ChatModel
	tools        Toolset
	store        *Store
	genai        *metrics.GenAI
	system       string
	modelTimeout time.Duration
	retryConfig  retry.Config
}

// Option customizes an Agent.
type Option func(*Agent)

// WithModelTimeout bounds each model call. Zero disables the deadline.
func WithModelTimeout(d time.Duration) Option {
	return func(a *Agent) { a.modelTimeout = d }
}

// WithRetryConfig overrides the backoff applied to transient model errors.
func WithRetryConfig(cfg retry.Config) Option {
	return func(a *Agent) { a.retryConfig = cfg }
}

// New builds an agent. The response schema is reflected once here and
// embedded in the system instruction.
func New(model llm.ChatModel, tools Toolset, store *Store, opts ...Option) (*Agent, error) {
	schema, err := structured.SchemaJSON[Response]()
	if err != nil {
		return nil, fmt.Errorf("reflecting response schema: %w", err)
	}

	a := &Agent{
		model:        model,
		tools:        tools,
		store:        store,
		genai:        metrics.NewGenAI(),
		system:       fmt.Sprintf(systemInstruction, schema),
		modelTimeout: 2 * time.Minute,
		retryConfig:  retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Stream runs one conversation turn and returns its event channel. Progress
// events arrive in tool-call order; the status event is always last and the
// channel closes after it. The turn holds the thread for contextID until the
// channel closes, so concurrent turns on the same context serialize.
func (a *Agent) Stream(ctx context.Context, query, contextID string) <-chan Event {
	events := make(chan Event, 4)
	go func() {
		defer close(events)
		a.run(ctx, query, contextID, events)
	}()
	return events
}

func (a *Agent) run(ctx context.Context, query, contextID string, events chan<- Event) {
	log := clog.FromContext(ctx).With("context_id", contextID)

	thread := a.store.Acquire(contextID)
	defer thread.Release()

	thread.Append(llm.UserMessage(query))

	for iteration := 0; iteration < maxModelIterations; iteration++ {
		msg, err := a.generate(ctx, thread.History())
		if err != nil {
			log.With("error", err).Error("Model call failed")
			thread.SetLast(nil)
			a.emit(ctx, events, fallbackEvent())
			return
		}
		thread.Append(msg)

		if len(msg.ToolCalls) == 0 {
			resp, err := structured.Decode[Response](msg.Text)
			if err != nil {
				log.With("error", err).With("text_length", len(msg.Text)).
					Warn("Model ended turn without a structured response")
				thread.SetLast(nil)
				a.emit(ctx, events, fallbackEvent())
				return
			}
			thread.SetLast(&resp)
			a.emit(ctx, events, statusEvent(resp))
			return
		}

		// Execute tool calls in the order the model issued them, appending
		// each observation immediately after its call.
		for _, call := range msg.ToolCalls {
			if !a.emit(ctx, events, Event{Content: progressInvoking}) {
				return
			}
			log.With("tool", call.Name).With("call_id", call.ID).Info("Executing tool call")
			a.genai.RecordToolCall(ctx, a.model.Name(), call.Name)

			payload := a.tools.Execute(ctx, call)
			thread.Append(llm.ToolResultMessage(call, payload))

			if !a.emit(ctx, events, Event{Content: progressProcessing}) {
				return
			}
		}
	}

	log.Warn("Turn exceeded the model iteration budget")
	thread.SetLast(nil)
	a.emit(ctx, events, fallbackEvent())
}

// generate runs one model call under the per-call deadline, retrying
// transient provider errors.
func (a *Agent) generate(ctx context.Context, history []llm.Message) (llm.Message, error) {
	if a.modelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.modelTimeout)
		defer cancel()
	}
	return retry.Do(ctx, a.retryConfig, "generate", llm.IsTransient, func() (llm.Message, error) {
		return a.model.Generate(ctx, a.system, history, a.tools.Definitions())
	})
}

// emit delivers an event unless the caller has gone away.
func (a *Agent) emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// statusEvent maps the structured response onto the streaming contract:
// completed is terminal; input_required and error are deliberately collapsed
// into the same "needs the user" shape.
func statusEvent(resp Response) Event {
	if resp.Status == StatusCompleted {
		return Event{TaskComplete: true, Content: resp.Message}
	}
	return Event{RequireUserInput: true, Content: resp.Message}
}

func fallbackEvent() Event {
	return Event{RequireUserInput: true, Content: fallbackMessage}
}
