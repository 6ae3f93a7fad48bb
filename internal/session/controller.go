package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/keywordmaster/keywordmaster/internal/logging"
	"go.uber.org/zap"
)

const (
	// CopyResetDelay is how long the copy status stays CopyCopied
	CopyResetDelay = 2 * time.Second
	// ResultsReadyDelay is the pause before the results-ready hook fires
	ResultsReadyDelay = 100 * time.Millisecond
	// TagSeparator joins tags copied to the clipboard
	TagSeparator = ", "
	// FallbackErrorMessage is shown when a failure carries no message
	FallbackErrorMessage = "Failed to generate tags. Please try again."
)

var (
	// ErrEmptyTopic is returned when the topic is empty after trimming
	ErrEmptyTopic = errors.New("topic is empty")
	// ErrInFlight is returned when a generation is already running
	ErrInFlight = errors.New("a generation is already in progress")
	// ErrNoTags is returned by copy and export when there are no tags
	ErrNoTags = errors.New("no tags to export")
	// ErrClosed is returned by Begin after Close
	ErrClosed = errors.New("session is closed")
)

// Generator produces tags for a topic.
type Generator interface {
	GenerateTags(ctx context.Context, topic string) ([]string, error)
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Clipboard         Clipboard     // Defaults to a clipboard that drops the text
	CopyResetDelay    time.Duration // Defaults to CopyResetDelay
	ResultsReadyDelay time.Duration // Defaults to ResultsReadyDelay
	NewRequestID      func() string // Defaults to uuid.NewString
}

// Controller owns the state of one session.
type Controller struct {
	gen  Generator
	opts Options

	mu         sync.Mutex
	topic      string
	tags       []string
	errMsg     string
	status     Status
	copyStatus CopyStatus
	requestID  string
	closed     bool

	copySeq    uint64
	copyTimer  *time.Timer
	readyTimer *time.Timer
	readyHook  func()

	subs    map[int]chan struct{}
	nextSub int
}

// NewController returns an idle controller that generates through gen.
func NewController(gen Generator, opts Options) *Controller {
	if opts.Clipboard == nil {
		opts.Clipboard = discardClipboard{}
	}
	if opts.CopyResetDelay <= 0 {
		opts.CopyResetDelay = CopyResetDelay
	}
	if opts.ResultsReadyDelay <= 0 {
		opts.ResultsReadyDelay = ResultsReadyDelay
	}
	if opts.NewRequestID == nil {
		opts.NewRequestID = uuid.NewString
	}

	return &Controller{
		gen:  gen,
		opts: opts,
		tags: []string{},
		subs: make(map[int]chan struct{}),
	}
}

// SetResultsReadyHook registers fn to run ResultsReadyDelay after a
// successful generation. Views use it to bring the tag list into focus.
func (c *Controller) SetResultsReadyHook(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readyHook = fn
}

// Begin starts a generation cycle for topic and returns its request id.
// The previous tags and error are cleared.
func (c *Controller) Begin(topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", ErrEmptyTopic
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", ErrClosed
	}
	if c.status == Generating {
		c.mu.Unlock()
		return "", ErrInFlight
	}

	c.stopReadyTimerLocked()
	c.topic = topic
	c.tags = []string{}
	c.errMsg = ""
	c.status = Generating
	c.requestID = c.opts.NewRequestID()
	id := c.requestID
	c.mu.Unlock()

	logging.Debug("Generation started", zap.String("request_id", id), zap.String("topic", topic))
	c.notify()
	return id, nil
}

// Finish completes the cycle started by Begin. On success the tags replace
// the list; on failure the list stays empty and a display message is stored.
// It reports false when requestID is not the current request.
func (c *Controller) Finish(requestID string, tags []string, err error) bool {
	c.mu.Lock()
	if c.closed || c.status != Generating || requestID != c.requestID {
		c.mu.Unlock()
		logging.Debug("Discarding stale generation result", zap.String("request_id", requestID))
		return false
	}

	if err != nil {
		c.status = Failed
		c.errMsg = displayMessage(err)
		c.tags = []string{}
	} else {
		c.status = Success
		c.tags = append(make([]string, 0, len(tags)), tags...)
		c.scheduleReadyLocked(requestID)
	}
	c.mu.Unlock()

	c.notify()
	return true
}

// Generate runs Begin, the generator and Finish synchronously.
// It returns ErrEmptyTopic or ErrInFlight when the request is not started,
// and otherwise the generator's error.
func (c *Controller) Generate(ctx context.Context, topic string) error {
	id, err := c.Begin(topic)
	if err != nil {
		return err
	}

	return c.Complete(ctx, id, topic)
}

// Complete runs the generator for a request started with Begin and records
// the outcome. Front ends that must not block call it off their event loop.
func (c *Controller) Complete(ctx context.Context, requestID, topic string) error {
	tags, err := c.gen.GenerateTags(ctx, topic)
	c.Finish(requestID, tags, err)
	return err
}

// RemoveTag removes the tag at index. Out-of-range indices leave the list
// untouched and return false.
func (c *Controller) RemoveTag(index int) bool {
	c.mu.Lock()
	if index < 0 || index >= len(c.tags) {
		c.mu.Unlock()
		return false
	}

	tags := make([]string, 0, len(c.tags)-1)
	tags = append(tags, c.tags[:index]...)
	tags = append(tags, c.tags[index+1:]...)
	c.tags = tags
	c.mu.Unlock()

	c.notify()
	return true
}

// CopyAll writes the tags, joined by ", ", to the clipboard and returns the
// copied text. The copy status reverts after CopyResetDelay.
func (c *Controller) CopyAll() (string, error) {
	c.mu.Lock()
	if len(c.tags) == 0 {
		c.mu.Unlock()
		return "", ErrNoTags
	}
	text := joinTags(c.tags)
	c.mu.Unlock()

	if err := c.opts.Clipboard.WriteAll(text); err != nil {
		return "", fmt.Errorf("failed to copy tags: %w", err)
	}

	c.mu.Lock()
	c.copyStatus = CopyCopied
	c.copySeq++
	seq := c.copySeq
	if c.copyTimer != nil {
		c.copyTimer.Stop()
	}
	if !c.closed {
		c.copyTimer = time.AfterFunc(c.opts.CopyResetDelay, func() { c.resetCopy(seq) })
	}
	c.mu.Unlock()

	c.notify()
	return text, nil
}

func (c *Controller) resetCopy(seq uint64) {
	c.mu.Lock()
	if seq != c.copySeq || c.copyStatus == CopyIdle {
		c.mu.Unlock()
		return
	}
	c.copyStatus = CopyIdle
	c.mu.Unlock()

	c.notify()
}

// Export returns the current tags as a CSV file named after the topic.
func (c *Controller) Export() (Export, error) {
	snap := c.Snapshot()
	if len(snap.Tags) == 0 {
		return Export{}, ErrNoTags
	}

	data, err := EncodeCSV(snap.Tags)
	if err != nil {
		return Export{}, err
	}

	return Export{
		Filename:    ExportFilename(snap.Topic),
		ContentType: CSVContentType,
		Data:        data,
	}, nil
}

// SaveExport writes the export into dir and returns the file path.
func (c *Controller) SaveExport(dir string) (string, error) {
	export, err := c.Export()
	if err != nil {
		return "", err
	}

	path, err := export.Save(dir)
	if err != nil {
		return "", err
	}

	logging.Info("Tags exported", zap.String("path", path), zap.Int("tags", len(c.Snapshot().Tags)))
	return path, nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Topic:      c.topic,
		Generating: c.status == Generating,
		Tags:       append([]string{}, c.tags...),
		Error:      c.errMsg,
		Copy:       c.copyStatus,
		Status:     c.status,
		RequestID:  c.requestID,
	}
}

// Subscribe returns a channel that receives a value after state changes and
// a function that ends the subscription. Signals coalesce; readers should
// call Snapshot on receipt.
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan struct{}, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(ch)
			}
		})
	}
}

// Close stops pending timers and ends all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if c.copyTimer != nil {
		c.copyTimer.Stop()
	}
	c.stopReadyTimerLocked()

	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *Controller) scheduleReadyLocked(requestID string) {
	c.stopReadyTimerLocked()
	hook := c.readyHook
	if hook == nil {
		return
	}

	c.readyTimer = time.AfterFunc(c.opts.ResultsReadyDelay, func() {
		c.mu.Lock()
		current := !c.closed && c.status == Success && c.requestID == requestID
		c.mu.Unlock()
		if current {
			hook()
		}
	})
}

func (c *Controller) stopReadyTimerLocked() {
	if c.readyTimer != nil {
		c.readyTimer.Stop()
		c.readyTimer = nil
	}
}

func displayMessage(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackErrorMessage
}

func joinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}
