// Package enhance implements the enhancement coordinator: one LLM analysis
// pass over a collection aggregate, with a deterministic manual fallback for
// every failure mode.
package enhance

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/anthropic"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/gemini"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/perplexity"
)

// LLM is the single capability the coordinator needs from a language model
// provider. Implementations return raw text which the coordinator parses as
// JSON.
type LLM interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// anthropicLLM adapts the Anthropic client to the LLM interface.
type anthropicLLM struct {
	client anthropic.Client
}

// NewAnthropicLLM wraps an Anthropic client.
func NewAnthropicLLM(client anthropic.Client) LLM {
	return &anthropicLLM{client: client}
}

func (a *anthropicLLM) Name() string {
	return a.client.Model()
}

func (a *anthropicLLM) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := a.client.Complete(ctx, anthropic.CompletionRequest{
		System: system,
		Prompt: prompt,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// geminiLLM adapts the Gemini client to the LLM interface.
type geminiLLM struct {
	client *gemini.Client
}

// NewGeminiLLM wraps a Gemini client.
func NewGeminiLLM(client *gemini.Client) LLM {
	return &geminiLLM{client: client}
}

func (g *geminiLLM) Name() string {
	return g.client.Model()
}

func (g *geminiLLM) Complete(ctx context.Context, system, prompt string) (string, error) {
	return g.client.Complete(ctx, system, prompt)
}

// perplexityLLM adapts the Perplexity chat client to the LLM interface.
type perplexityLLM struct {
	client perplexity.Client
}

// NewPerplexityLLM wraps a Perplexity client.
func NewPerplexityLLM(client perplexity.Client) LLM {
	return &perplexityLLM{client: client}
}

func (p *perplexityLLM) Name() string {
	return p.client.Model()
}

func (p *perplexityLLM) Complete(ctx context.Context, system, prompt string) (string, error) {
	msgs := []perplexity.Message{}
	if system != "" {
		msgs = append(msgs, perplexity.Message{Role: "system", Content: system})
	}
	msgs = append(msgs, perplexity.Message{Role: "user", Content: prompt})

	resp, err := p.client.ChatCompletion(ctx, perplexity.ChatCompletionRequest{Messages: msgs})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("perplexity: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
