package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu     sync.Mutex
	tags   []string
	err    error
	topics []string
}

func (f *fakeGenerator) GenerateTags(_ context.Context, topic string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return f.tags, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.topics)
}

type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

func newTestController(gen Generator, opts Options) *Controller {
	if opts.NewRequestID == nil {
		n := 0
		opts.NewRequestID = func() string {
			n++
			return fmt.Sprintf("req-%d", n)
		}
	}
	return NewController(gen, opts)
}

func TestController_InitialState(t *testing.T) {
	c := newTestController(&fakeGenerator{}, Options{})
	defer c.Close()

	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.Status)
	assert.False(t, snap.Generating)
	assert.Empty(t, snap.Tags)
	assert.Empty(t, snap.Error)
	assert.Equal(t, CopyIdle, snap.Copy)
	assert.True(t, snap.Stats().Empty())
}

func TestController_EmptyTopicNeverCallsGenerator(t *testing.T) {
	gen := &fakeGenerator{tags: []string{"a"}}
	c := newTestController(gen, Options{})
	defer c.Close()

	for _, topic := range []string{"", "   ", "\t\n"} {
		err := c.Generate(context.Background(), topic)
		assert.ErrorIs(t, err, ErrEmptyTopic)
	}

	assert.Zero(t, gen.calls())
	assert.Equal(t, Idle, c.Snapshot().Status)
}

func TestController_GenerateSuccess(t *testing.T) {
	gen := &fakeGenerator{tags: []string{"a", "b", "c"}}
	c := newTestController(gen, Options{})
	defer c.Close()

	require.NoError(t, c.Generate(context.Background(), " Tesla Model 3 "))

	snap := c.Snapshot()
	assert.Equal(t, Success, snap.Status)
	assert.Equal(t, []string{"a", "b", "c"}, snap.Tags)
	assert.Equal(t, " Tesla Model 3 ", snap.Topic)
	assert.Equal(t, []string{" Tesla Model 3 "}, gen.topics, "topic is forwarded as received")
	assert.Equal(t, "req-1", snap.RequestID)
}

func TestController_RemoveTag(t *testing.T) {
	c := newTestController(&fakeGenerator{tags: []string{"a", "b", "c"}}, Options{})
	defer c.Close()
	require.NoError(t, c.Generate(context.Background(), "topic"))

	assert.True(t, c.RemoveTag(1))
	snap := c.Snapshot()
	assert.Equal(t, []string{"a", "c"}, snap.Tags)
	assert.Equal(t, 2, snap.Stats().Count)
	assert.InDelta(t, 1.0, snap.Stats().AverageLength, 1e-9)

	assert.False(t, c.RemoveTag(2))
	assert.False(t, c.RemoveTag(-1))
	assert.Equal(t, []string{"a", "c"}, c.Snapshot().Tags)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	gen := &fakeGenerator{tags: []string{"a", "b"}}
	c := newTestController(gen, Options{})
	defer c.Close()
	require.NoError(t, c.Generate(context.Background(), "topic"))

	snap := c.Snapshot()
	snap.Tags[0] = "mutated"
	gen.tags[1] = "mutated"

	assert.Equal(t, []string{"a", "b"}, c.Snapshot().Tags)
}

func TestController_FailureThenSuccess(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("API key not valid")}
	c := newTestController(gen, Options{})
	defer c.Close()

	err := c.Generate(context.Background(), "topic")
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, Failed, snap.Status)
	assert.Empty(t, snap.Tags)
	assert.Equal(t, "API key not valid", snap.Error)

	gen.err = nil
	gen.tags = []string{"x"}
	require.NoError(t, c.Generate(context.Background(), "topic"))

	snap = c.Snapshot()
	assert.Equal(t, Success, snap.Status)
	assert.Empty(t, snap.Error)
	assert.Equal(t, []string{"x"}, snap.Tags)
}

func TestController_FailureWithoutMessage(t *testing.T) {
	c := newTestController(&fakeGenerator{err: errors.New("  ")}, Options{})
	defer c.Close()

	_ = c.Generate(context.Background(), "topic")

	assert.Equal(t, FallbackErrorMessage, c.Snapshot().Error)
}

func TestController_BeginClearsPreviousResults(t *testing.T) {
	c := newTestController(&fakeGenerator{tags: []string{"a"}}, Options{})
	defer c.Close()
	require.NoError(t, c.Generate(context.Background(), "first"))

	id, err := c.Begin("second")
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, Generating, snap.Status)
	assert.True(t, snap.Generating)
	assert.Empty(t, snap.Tags)
	assert.Equal(t, "second", snap.Topic)
	assert.Equal(t, id, snap.RequestID)
}

func TestController_RejectsWhileInFlight(t *testing.T) {
	gen := &fakeGenerator{}
	c := newTestController(gen, Options{})
	defer c.Close()

	_, err := c.Begin("first")
	require.NoError(t, err)

	_, err = c.Begin("second")
	assert.ErrorIs(t, err, ErrInFlight)
	assert.ErrorIs(t, c.Generate(context.Background(), "third"), ErrInFlight)
	assert.Zero(t, gen.calls())
	assert.Equal(t, "first", c.Snapshot().Topic)
}

func TestController_BeginAfterClose(t *testing.T) {
	gen := &fakeGenerator{tags: []string{"a"}}
	c := newTestController(gen, Options{})
	require.NoError(t, c.Generate(context.Background(), "first"))
	c.Close()

	_, err := c.Begin("second")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.Generate(context.Background(), "second"), ErrClosed)

	snap := c.Snapshot()
	assert.Equal(t, Success, snap.Status)
	assert.False(t, snap.Generating)
	assert.Equal(t, "first", snap.Topic)
	assert.Equal(t, []string{"a"}, snap.Tags)
	assert.Equal(t, 1, gen.calls())
}

func TestController_DiscardsStaleFinish(t *testing.T) {
	c := newTestController(&fakeGenerator{}, Options{})
	defer c.Close()

	id, err := c.Begin("topic")
	require.NoError(t, err)

	assert.False(t, c.Finish("other-request", []string{"stale"}, nil))
	assert.Equal(t, Generating, c.Snapshot().Status)

	assert.True(t, c.Finish(id, []string{"fresh"}, nil))
	assert.False(t, c.Finish(id, []string{"again"}, nil), "a request finishes once")
	assert.Equal(t, []string{"fresh"}, c.Snapshot().Tags)
}

func TestController_CopyAll(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestController(&fakeGenerator{tags: []string{"a", "b"}}, Options{
		Clipboard:      clip,
		CopyResetDelay: 30 * time.Millisecond,
	})
	defer c.Close()
	require.NoError(t, c.Generate(context.Background(), "topic"))

	text, err := c.CopyAll()
	require.NoError(t, err)

	assert.Equal(t, "a, b", text)
	assert.Equal(t, []string{"a, b"}, clip.writes)
	assert.Equal(t, CopyCopied, c.Snapshot().Copy)

	assert.Eventually(t, func() bool {
		return c.Snapshot().Copy == CopyIdle
	}, time.Second, 5*time.Millisecond)
}

func TestController_CopyAllRequiresTags(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestController(&fakeGenerator{}, Options{Clipboard: clip})
	defer c.Close()

	_, err := c.CopyAll()

	assert.ErrorIs(t, err, ErrNoTags)
	assert.Empty(t, clip.writes)
	assert.Equal(t, CopyIdle, c.Snapshot().Copy)
}

func TestController_CopyAllClipboardFailure(t *testing.T) {
	clip := &fakeClipboard{err: ErrClipboardUnsupported}
	c := newTestController(&fakeGenerator{tags: []string{"a"}}, Options{Clipboard: clip})
	defer c.Close()
	require.NoError(t, c.Generate(context.Background(), "topic"))

	_, err := c.CopyAll()

	assert.ErrorIs(t, err, ErrClipboardUnsupported)
	assert.Equal(t, CopyIdle, c.Snapshot().Copy)
}

func TestController_NewerCopyCancelsPendingRevert(t *testing.T) {
	c := newTestController(&fakeGenerator{tags: []string{"a"}}, Options{
		Clipboard:      &fakeClipboard{},
		CopyResetDelay: 200 * time.Millisecond,
	})
	defer c.Close()
	require.NoError(t, c.Generate(context.Background(), "topic"))

	_, err := c.CopyAll()
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)
	_, err = c.CopyAll()
	require.NoError(t, err)

	// The first revert would have fired by now.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, CopyCopied, c.Snapshot().Copy)

	assert.Eventually(t, func() bool {
		return c.Snapshot().Copy == CopyIdle
	}, time.Second, 5*time.Millisecond)
}

func TestController_ResultsReadyHook(t *testing.T) {
	c := newTestController(&fakeGenerator{tags: []string{"a"}}, Options{
		ResultsReadyDelay: 10 * time.Millisecond,
	})
	defer c.Close()

	fired := make(chan struct{}, 1)
	c.SetResultsReadyHook(func() { fired <- struct{}{} })

	require.NoError(t, c.Generate(context.Background(), "topic"))

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("results-ready hook did not fire")
	}
}

func TestController_ResultsReadyHookSkippedWhenSuperseded(t *testing.T) {
	c := newTestController(&fakeGenerator{tags: []string{"a"}}, Options{
		ResultsReadyDelay: 40 * time.Millisecond,
	})
	defer c.Close()

	fired := make(chan struct{}, 1)
	c.SetResultsReadyHook(func() { fired <- struct{}{} })

	require.NoError(t, c.Generate(context.Background(), "topic"))
	_, err := c.Begin("next")
	require.NoError(t, err)

	select {
	case <-fired:
		t.Fatal("hook fired for a superseded result")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestController_Subscribe(t *testing.T) {
	c := newTestController(&fakeGenerator{tags: []string{"a"}}, Options{})

	updates, cancel := c.Subscribe()
	require.NoError(t, c.Generate(context.Background(), "topic"))

	select {
	case _, ok := <-updates:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	cancel()
	for range updates {
	}

	other, _ := c.Subscribe()
	c.Close()
	_, ok := <-other
	assert.False(t, ok, "channel closed by Close")
}

func TestController_Export(t *testing.T) {
	c := newTestController(&fakeGenerator{tags: []string{"a", "b", "c"}}, Options{})
	defer c.Close()

	_, err := c.Export()
	assert.ErrorIs(t, err, ErrNoTags)

	require.NoError(t, c.Generate(context.Background(), "Tesla Model 3"))

	export, err := c.Export()
	require.NoError(t, err)
	assert.Equal(t, "youtube-tags-tesla-model-3.csv", export.Filename)
	assert.Equal(t, "text/csv", export.ContentType)
	assert.Equal(t, "a,b,c", string(export.Data))
}
