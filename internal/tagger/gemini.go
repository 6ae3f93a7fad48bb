package tagger

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used by GeminiProvider.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider calls the Gemini API through the Google Gen AI SDK.
type GeminiProvider struct {
	model     string
	newClient func(ctx context.Context, apiKey string) (contentGenerator, error)
}

// NewGeminiProvider returns a provider addressing model.
func NewGeminiProvider(model string) *GeminiProvider {
	return &GeminiProvider{
		model:     model,
		newClient: newGenAIClient,
	}
}

func newGenAIClient(ctx context.Context, apiKey string) (contentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// Name implements Provider
func (p *GeminiProvider) Name() string { return ProviderGemini }

// Model implements Provider
func (p *GeminiProvider) Model() string { return p.model }

// Complete implements Provider. A client is built per call from the key in
// the environment.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	client, err := p.newClient(ctx, lookupKey(GeminiKeyEnvVar, FallbackKeyEnvVar))
	if err != nil {
		return "", &credentialError{err: fmt.Errorf("create gemini client: %w", err)}
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
	}

	resp, err := client.GenerateContent(ctx, model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", withStatus(geminiStatus(err), err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// geminiStatus extracts the HTTP status from an SDK error, or 0.
func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
