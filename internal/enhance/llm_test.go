package enhance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/perplexity"
)

type stubPerplexity struct {
	req      perplexity.ChatCompletionRequest
	response *perplexity.ChatCompletionResponse
	err      error
}

func (s *stubPerplexity) Model() string { return "sonar-pro" }

func (s *stubPerplexity) ChatCompletion(_ context.Context, req perplexity.ChatCompletionRequest) (*perplexity.ChatCompletionResponse, error) {
	s.req = req
	return s.response, s.err
}

func TestPerplexityLLMComplete(t *testing.T) {
	stub := &stubPerplexity{
		response: &perplexity.ChatCompletionResponse{
			Choices: []perplexity.Choice{
				{Message: perplexity.Message{Role: "assistant", Content: `{"company_background": "x"}`}},
			},
		},
	}
	llm := NewPerplexityLLM(stub)
	assert.Equal(t, "sonar-pro", llm.Name())

	out, err := llm.Complete(context.Background(), "You are an analyst.", "Analyze acme.")
	require.NoError(t, err)
	assert.Equal(t, `{"company_background": "x"}`, out)

	require.Len(t, stub.req.Messages, 2)
	assert.Equal(t, "system", stub.req.Messages[0].Role)
	assert.Equal(t, "You are an analyst.", stub.req.Messages[0].Content)
	assert.Equal(t, "user", stub.req.Messages[1].Role)
}

func TestPerplexityLLMNoSystemMessage(t *testing.T) {
	stub := &stubPerplexity{
		response: &perplexity.ChatCompletionResponse{
			Choices: []perplexity.Choice{{Message: perplexity.Message{Content: "ok"}}},
		},
	}
	llm := NewPerplexityLLM(stub)

	_, err := llm.Complete(context.Background(), "", "Analyze acme.")
	require.NoError(t, err)
	require.Len(t, stub.req.Messages, 1)
	assert.Equal(t, "user", stub.req.Messages[0].Role)
}

func TestPerplexityLLMEmptyChoices(t *testing.T) {
	stub := &stubPerplexity{response: &perplexity.ChatCompletionResponse{}}
	llm := NewPerplexityLLM(stub)

	_, err := llm.Complete(context.Background(), "sys", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
