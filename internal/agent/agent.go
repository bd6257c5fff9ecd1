// Package agent runs the query-routing loop: the model reads the question,
// picks the structured or semantic backend through tool calls, and composes
// the answer from the tool results.
package agent

import (
	"context"

	"github.com/ovalmind/ovalmind/internal/llm"
	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/tools"
)

const maxToolIterations = 10

type Agent struct {
	llm          llm.LLM
	tools        *tools.Registry
	systemPrompt string
	messages     []llm.Message
}

func New(model llm.LLM, registry *tools.Registry) *Agent {
	return &Agent{
		llm:          model,
		tools:        registry,
		systemPrompt: systemPrompt,
	}
}

func (a *Agent) Registry() *tools.Registry {
	return a.tools
}

// Reset clears the conversation history.
func (a *Agent) Reset() {
	a.messages = nil
}

func (a *Agent) History() []llm.Message {
	return a.messages
}

// Ask runs one user turn through the tool loop. Conversation history is kept
// in memory for the lifetime of the agent, so follow-up questions work.
func (a *Agent) Ask(ctx context.Context, userMessage string) (string, error) {
	a.messages = append(a.messages, llm.Message{Role: "user", Content: userMessage})

	availableTools := a.tools.Tools()

	for i := range maxToolIterations {
		logger.Debug("agent loop iteration", "iteration", i, "messages", len(a.messages))

		resp, err := a.llm.ChatWithTools(ctx, a.systemPrompt, a.messages, availableTools)
		if err != nil {
			return "", err
		}

		if len(resp.ToolCalls) == 0 {
			logger.Debug("llm response (final)", "chars", len(resp.Content))
			a.messages = append(a.messages, llm.Message{Role: "assistant", Content: resp.Content})
			return resp.Content, nil
		}

		logger.Debug("llm requested tools", "count", len(resp.ToolCalls))
		a.messages = append(a.messages, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, tc := range resp.ToolCalls {
			logger.Debug("executing tool", "name", tc.Name, "id", tc.ID)

			result, err := a.tools.Execute(ctx, tc.Name, tc.Arguments)
			if err != nil {
				result = "Error: " + err.Error()
			}

			a.messages = append(a.messages, llm.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	logger.Warn("tool iteration limit reached")
	final, err := a.llm.Chat(ctx, a.systemPrompt, a.messages)
	if err != nil {
		return "", err
	}
	a.messages = append(a.messages, llm.Message{Role: "assistant", Content: final})
	return final, nil
}
