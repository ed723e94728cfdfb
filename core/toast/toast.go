package toast

import (
	"sync"
	"time"

	"github.com/trezcool/registrar/core/locale"
)

// DefaultLife is how long a toast stays on screen unless told otherwise.
const DefaultLife = 5 * time.Second

type Kind string

const (
	Success Kind = "success"
	Info    Kind = "info"
	Warn    Kind = "warn"
	Error   Kind = "error"
)

func (k Kind) titleKey() string {
	switch k {
	case Warn:
		return locale.MsgWarning
	case Info:
		return locale.MsgInfo
	case Error:
		return locale.MsgError
	default:
		return locale.MsgSuccessful
	}
}

// Message is a toast as handed to the UI. Detail may be a bilingual "arabic|english" string
// until it is drained.
type Message struct {
	Kind   Kind          `json:"severity"`
	Title  string        `json:"summary"`
	Detail string        `json:"detail"`
	Life   time.Duration `json:"life"`
}

// Titler translates UI message keys.
type Titler interface {
	T(key string, lang ...locale.Lang) string
}

// Center queues toasts until the UI drains them.
type Center struct {
	titler Titler

	mu      sync.Mutex
	pending []Message
}

// NewCenter returns a Center; a nil titler leaves message keys as titles.
func NewCenter(titler Titler) *Center {
	return &Center{titler: titler}
}

// Show queues a toast. Kind defaults to Success and life to DefaultLife.
func (c *Center) Show(detail string, kind Kind, life ...time.Duration) {
	if kind == "" {
		kind = Success
	}
	msg := Message{Kind: kind, Detail: detail, Life: DefaultLife}
	if len(life) > 0 && life[0] > 0 {
		msg.Life = life[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, msg)
}

// ShowError clears every pending toast, then queues detail (as an Error unless kind says otherwise).
func (c *Center) ShowError(detail string, kind Kind) {
	if kind == "" {
		kind = Error
	}
	c.Clear()
	c.Show(detail, kind)
}

func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Drain returns the pending toasts, oldest first, rendered in lang, and empties the queue.
func (c *Center) Drain(lang locale.Lang) []Message {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	res := make([]Message, len(pending))
	for i, msg := range pending {
		msg.Detail = locale.ServerTranslate(msg.Detail, lang)
		msg.Title = msg.Kind.titleKey()
		if c.titler != nil {
			msg.Title = c.titler.T(msg.Title, lang)
		}
		res[i] = msg
	}
	return res
}
