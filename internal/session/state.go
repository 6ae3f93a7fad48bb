package session

import (
	"fmt"

	"github.com/keywordmaster/keywordmaster/internal/stats"
)

// Status is the derived state of a session.
type Status int

const (
	// Idle means nothing has been generated yet
	Idle Status = iota
	// Generating means a request is in flight
	Generating
	// Success means the last request returned tags (possibly zero)
	Success
	// Failed means the last request returned an error
	Failed
)

// String returns the lower-case name of the status
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText renders the status by name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{Idle, Generating, Success, Failed} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// CopyStatus reports whether the tags were just copied.
type CopyStatus int

const (
	// CopyIdle is the resting state
	CopyIdle CopyStatus = iota
	// CopyCopied is shown for CopyResetDelay after a copy
	CopyCopied
)

// String returns the lower-case name of the copy status
func (c CopyStatus) String() string {
	if c == CopyCopied {
		return "copied"
	}
	return "idle"
}

// MarshalText renders the copy status by name in JSON.
func (c CopyStatus) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a copy status name.
func (c *CopyStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*c = CopyIdle
	case "copied":
		*c = CopyCopied
	default:
		return fmt.Errorf("unknown copy status %q", text)
	}
	return nil
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Topic      string     `json:"topic"`
	Generating bool       `json:"generating"`
	Tags       []string   `json:"tags"`
	Error      string     `json:"error,omitempty"`
	Copy       CopyStatus `json:"copy"`
	Status     Status     `json:"status"`
	RequestID  string     `json:"requestId,omitempty"`
}

// Stats computes the statistics of the snapshot's tags.
func (s Snapshot) Stats() stats.Stats {
	return stats.Compute(s.Tags)
}

// Joined returns the tags joined the way they are copied.
func (s Snapshot) Joined() string {
	return joinTags(s.Tags)
}
