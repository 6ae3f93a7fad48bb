package tagger

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func TestGeminiProvider_Complete(t *testing.T) {
	t.Setenv(GeminiKeyEnvVar, "")
	t.Setenv(FallbackKeyEnvVar, "fallback-key")

	gen := &fakeGenerator{resp: textResponse("a, b, c")}
	var gotKey string
	p := NewGeminiProvider(DefaultGeminiModel)
	p.newClient = func(_ context.Context, apiKey string) (contentGenerator, error) {
		gotKey = apiKey
		return gen, nil
	}

	text, err := p.Complete(context.Background(), NewRequest("cats", p.Model()))

	require.NoError(t, err)
	assert.Equal(t, "a, b, c", text)
	assert.Equal(t, "fallback-key", gotKey)
	assert.Equal(t, DefaultGeminiModel, gen.model)
	assert.Contains(t, gen.prompt, "for the topic: cats.")
	require.NotNil(t, gen.config.Temperature)
	assert.Equal(t, float32(0.7), *gen.config.Temperature)
	require.NotNil(t, gen.config.SystemInstruction)
	assert.Equal(t, SystemPrompt, gen.config.SystemInstruction.Parts[0].Text)
}

func TestGeminiProvider_PrefersGeminiKey(t *testing.T) {
	t.Setenv(GeminiKeyEnvVar, "gemini-key")
	t.Setenv(FallbackKeyEnvVar, "fallback-key")

	var gotKey string
	p := NewGeminiProvider(DefaultGeminiModel)
	p.newClient = func(_ context.Context, apiKey string) (contentGenerator, error) {
		gotKey = apiKey
		return &fakeGenerator{resp: textResponse("")}, nil
	}

	_, err := p.Complete(context.Background(), NewRequest("x", ""))
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", gotKey)
}

func TestGeminiProvider_ClientFailureIsAuth(t *testing.T) {
	p := NewGeminiProvider(DefaultGeminiModel)
	p.newClient = func(context.Context, string) (contentGenerator, error) {
		return nil, errors.New("api key is required")
	}

	_, err := New(p).GenerateTags(context.Background(), "x")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindAuth, genErr.Kind)
	assert.Contains(t, genErr.Message, "api key is required")
}

func TestGeminiProvider_APIError(t *testing.T) {
	p := NewGeminiProvider(DefaultGeminiModel)
	p.newClient = func(context.Context, string) (contentGenerator, error) {
		return &fakeGenerator{err: genai.APIError{Code: 503, Message: "overloaded", Status: "UNAVAILABLE"}}, nil
	}

	_, err := New(p).GenerateTags(context.Background(), "x")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindService, genErr.Kind)
}

type fakeChat struct {
	resp openai.ChatCompletionResponse
	err  error
	req  openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestOpenAIProvider_Complete(t *testing.T) {
	t.Setenv(OpenAIKeyEnvVar, "sk-test")

	chat := &fakeChat{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "x, y"}}},
	}}
	var gotKey string
	p := NewOpenAIProvider(DefaultOpenAIModel)
	p.newClient = func(apiKey string) ChatCompletionCreator {
		gotKey = apiKey
		return chat
	}

	tags, err := New(p).GenerateTags(context.Background(), "dogs")

	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tags)
	assert.Equal(t, "sk-test", gotKey)
	assert.Equal(t, DefaultOpenAIModel, chat.req.Model)
	assert.Equal(t, float32(0.7), chat.req.Temperature)
	require.Len(t, chat.req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, chat.req.Messages[0].Role)
	assert.Equal(t, SystemPrompt, chat.req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, chat.req.Messages[1].Role)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := NewOpenAIProvider(DefaultOpenAIModel)
	p.newClient = func(string) ChatCompletionCreator { return &fakeChat{} }

	tags, err := New(p).GenerateTags(context.Background(), "dogs")

	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestOpenAIProvider_Unauthorized(t *testing.T) {
	p := NewOpenAIProvider(DefaultOpenAIModel)
	p.newClient = func(string) ChatCompletionCreator {
		return &fakeChat{err: &openai.APIError{HTTPStatusCode: 401, Message: "Incorrect API key provided"}}
	}

	_, err := New(p).GenerateTags(context.Background(), "dogs")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindAuth, genErr.Kind)
	assert.Contains(t, genErr.Message, "Incorrect API key provided")
}
