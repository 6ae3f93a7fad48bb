package tagger

import (
	"context"
	"time"

	"github.com/keywordmaster/keywordmaster/internal/logging"
	"go.uber.org/zap"
)

// Tagger generates tags for a topic through a Provider.
// It holds no state between calls and is safe for concurrent use.
type Tagger struct {
	provider Provider
}

// New returns a Tagger backed by provider.
func New(provider Provider) *Tagger {
	return &Tagger{provider: provider}
}

// Provider returns the backing provider.
func (t *Tagger) Provider() Provider {
	return t.provider
}

// GenerateTags asks the model for tags about topic.
//
// The topic is forwarded as received. On failure the returned error is always
// a *GenerationError and no tags are returned. An empty reply yields an empty
// slice and a nil error.
func (t *Tagger) GenerateTags(ctx context.Context, topic string) ([]string, error) {
	name, model := t.provider.Name(), t.provider.Model()
	logging.Debug("Requesting tags",
		zap.String("provider", name),
		zap.String("model", model),
		zap.String("topic", topic),
	)

	start := time.Now()
	text, err := t.provider.Complete(ctx, NewRequest(topic, model))
	if err != nil {
		genErr := newGenerationError(name, err)
		logging.LogGenerationFailure(name, model, topic, genErr.Kind.String(), err)
		return nil, genErr
	}

	tags := ParseTags(text)
	logging.LogGeneration(name, model, topic, len(tags), time.Since(start))
	return tags, nil
}
