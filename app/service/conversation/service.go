package conversation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
)

var (
	ErrNoItems            = errors.New("no named items to submit")
	ErrEmptyFollowUp      = errors.New("follow-up text is empty")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrAlreadyChatting    = errors.New("conversation already started")
	ErrNotChatting        = errors.New("no conversation to follow up on")
	ErrItemNotFound       = errors.New("item not found")
	ErrEntryNotFound      = errors.New("history entry not found")
)

// PromptSender turns a composed prompt into assistant text.
type PromptSender interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HistoryStore mirrors the history list into durable storage. It is a
// best-effort cache: load recovers to empty on bad data, save failures
// are logged by the store and never reach conversation state.
type HistoryStore interface {
	LoadHistory() []HistoryEntry
	SaveHistory(entries []HistoryEntry)
}

// Service owns the live conversation state: item slots, notes, the
// transcript, mode, status and the persisted history list. All methods
// are safe for concurrent use, though submissions are serialized by
// the single in-flight rule.
type Service struct {
	sender  PromptSender
	store   HistoryStore
	turnCap int

	mu         sync.Mutex
	slots      slotList
	notes      string
	messages   []Message
	history    []HistoryEntry
	mode       Mode
	status     Status
	lastError  string
	generation uint64
}

func NewService(sender PromptSender, store HistoryStore, turnCap int) *Service {
	s := &Service{
		sender:  sender,
		store:   store,
		turnCap: turnCap,
		slots:   newSlotList(),
		mode:    ModeCollectingItems,
		status:  StatusIdle,
	}

	if store != nil {
		s.history = store.LoadHistory()
	}

	return s
}

func (s *Service) EditItem(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.slots.edit(id, name) {
		return ErrItemNotFound
	}

	return nil
}

func (s *Service) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.slots.delete(id) {
		return ErrItemNotFound
	}

	return nil
}

func (s *Service) SetNotes(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = text
}

// Submit sends the initial prompt built from the named items. With no
// named items it is a strict no-op: no request, no state change.
func (s *Service) Submit(ctx context.Context, variant Variant) error {
	s.mu.Lock()

	if s.status == StatusSubmitting {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}

	if s.mode == ModeChatting {
		s.mu.Unlock()
		return ErrAlreadyChatting
	}

	items := s.slots.named()
	if len(items) == 0 {
		s.mu.Unlock()
		return ErrNoItems
	}

	notes := s.notes
	prompt := buildInitialPrompt(variant, items, notes)

	s.appendMessage(RoleUser, itemsTurn(items, notes))
	s.status = StatusSubmitting
	s.lastError = ""
	tag := s.generation

	s.mu.Unlock()

	text, err := s.sender.Generate(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if tag != s.generation {
		slog.Debug("Discarding stale response", "generation", tag)
		return nil
	}

	if err != nil {
		s.status = StatusError
		s.lastError = FailureMessage
		slog.Error("Submission failed", "error", err)

		return err
	}

	s.appendMessage(RoleAssistant, text)
	s.mode = ModeChatting
	s.status = StatusIdle

	entry := HistoryEntry{
		ID:           uuid.NewString(),
		Items:        items,
		Notes:        notes,
		ResponseText: text,
		Timestamp:    now(),
	}
	s.history = append([]HistoryEntry{entry}, s.history...)
	s.saveHistoryLocked()

	slog.Info("Received suggestion",
		"variant", variant,
		"items", len(items),
	)

	return nil
}

// FollowUp sends the raw text prefixed with the prior transcript.
// Whitespace-only text is a no-op.
func (s *Service) FollowUp(ctx context.Context, text string) error {
	s.mu.Lock()

	if s.status == StatusSubmitting {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}

	if s.mode != ModeChatting {
		s.mu.Unlock()
		return ErrNotChatting
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		s.mu.Unlock()
		return ErrEmptyFollowUp
	}

	prompt := buildFollowUpPrompt(s.messages, trimmed, s.turnCap)

	s.appendMessage(RoleUser, trimmed)
	s.status = StatusSubmitting
	s.lastError = ""
	tag := s.generation

	s.mu.Unlock()

	reply, err := s.sender.Generate(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if tag != s.generation {
		slog.Debug("Discarding stale response", "generation", tag)
		return nil
	}

	if err != nil {
		s.status = StatusError
		s.lastError = FailureMessage
		slog.Error("Follow-up failed", "error", err)

		return err
	}

	s.appendMessage(RoleAssistant, reply)
	s.status = StatusIdle

	return nil
}

// Reset starts a new conversation from any prior state. The history
// list is kept, only the live state is cleared.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.slots = newSlotList()
	s.notes = ""
	s.messages = nil
	s.mode = ModeCollectingItems
	s.status = StatusIdle
	s.lastError = ""
}

// Reopen replaces the live transcript with the two turns of a stored
// entry: the item list the user submitted and the saved response.
func (s *Service) Reopen(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := pie.FindFirstUsing(s.history, func(entry HistoryEntry) bool {
		return entry.ID == id
	})
	if index < 0 {
		return ErrEntryNotFound
	}

	entry := s.history[index]

	s.generation++
	s.slots = slotListFrom(entry.Items)
	s.notes = entry.Notes
	s.messages = []Message{
		{Role: RoleUser, Content: itemsTurn(entry.Items, entry.Notes), Timestamp: entry.Timestamp},
		{Role: RoleAssistant, Content: entry.ResponseText, Timestamp: entry.Timestamp},
	}
	s.mode = ModeChatting
	s.status = StatusIdle
	s.lastError = ""

	return nil
}

func (s *Service) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slots.all()
}

func (s *Service) Notes() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.notes
}

func (s *Service) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Message, len(s.messages))
	copy(result, s.messages)

	return result
}

func (s *Service) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]HistoryEntry, len(s.history))
	copy(result, s.history)

	return result
}

func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode
}

func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

func (s *Service) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastError
}

func (s *Service) appendMessage(role, content string) {
	s.messages = append(s.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: now(),
	})
}

func (s *Service) saveHistoryLocked() {
	if s.store == nil {
		return
	}

	snapshot := make([]HistoryEntry, len(s.history))
	copy(snapshot, s.history)

	s.store.SaveHistory(snapshot)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
