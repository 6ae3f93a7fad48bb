package tagger

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// ChatCompletionCreator is the subset of *openai.Client used by OpenAIProvider.
type ChatCompletionCreator interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	model     string
	newClient func(apiKey string) ChatCompletionCreator
}

// NewOpenAIProvider returns a provider addressing model.
func NewOpenAIProvider(model string) *OpenAIProvider {
	return &OpenAIProvider{
		model: model,
		newClient: func(apiKey string) ChatCompletionCreator {
			return openai.NewClient(apiKey)
		},
	}
}

// Name implements Provider
func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

// Model implements Provider
func (p *OpenAIProvider) Model() string { return p.model }

// Complete implements Provider. The first choice is the reply; a response
// without choices is an empty reply.
func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	client := p.newClient(lookupKey(OpenAIKeyEnvVar))

	model := req.Model
	if model == "" {
		model = p.model
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", withStatus(openAIStatus(err), err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
