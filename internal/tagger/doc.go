// Package tagger turns a video topic into a list of search tags using a hosted
// generative-language model.
//
// A Tagger builds a fixed instructional prompt around the topic, sends it with
// a fixed persona and sampling temperature to a Provider, and splits the free
// text reply on commas into trimmed, non-empty tags in reply order.
//
// # Providers
//
// Two providers are available:
//   - gemini: Google Gen AI SDK (default, model gemini-3-flash-preview)
//   - openai: OpenAI chat completions
//
// The API key is read from the environment on every call and is never
// validated up front. A missing or wrong key surfaces as a GenerationError
// from the provider.
//
// # Usage Example
//
//	provider, err := tagger.NewProvider("gemini", "")
//	if err != nil {
//	    return err
//	}
//
//	tags, err := tagger.New(provider).GenerateTags(ctx, "Tesla Model 3 Review")
//	if err != nil {
//	    var genErr *tagger.GenerationError
//	    if errors.As(err, &genErr) {
//	        fmt.Println(genErr.Kind, genErr.Message)
//	    }
//	    return err
//	}
//
// # Error Handling
//
// Each call is a single attempt. There is no retry, no backoff and no cache.
// Every provider failure is returned as a *GenerationError wrapping the cause.
// An empty or malformed reply is not an error; it yields zero tags.
package tagger
