package audit

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

var jsonMarshal = json.Marshal

type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	CallID    string         `json:"callId"`
	UserID    string         `json:"userId"`
	Tool      string         `json:"tool"`
	Toolset   string         `json:"toolset"`
	Tenant    string         `json:"tenant,omitempty"`
	Resources []string       `json:"resources,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Outcome   string         `json:"outcome"`
	Error     string         `json:"error,omitempty"`
}

// Logger writes one JSON line per event.
type Logger struct {
	out io.Writer
	mu  sync.Mutex
}

func NewLogger(out io.Writer) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{out: out}
}

func (l *Logger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	data, err := jsonMarshal(event)
	if err != nil {
		return
	}
	_, _ = l.out.Write(append(data, '\n'))
}
