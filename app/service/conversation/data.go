package conversation

// Message roles in the live transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FailureMessage is the single line shown to the user for any failed
// submission, whatever actually went wrong underneath.
const FailureMessage = "Failed to get a response. Please try again."

type Mode string

const (
	ModeCollectingItems Mode = "collecting_items"
	ModeChatting        Mode = "chatting"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusError      Status = "error"
)

// Variant selects the instructional template wrapped around the
// initial item list.
type Variant string

const (
	VariantRecycle Variant = "recycle"
	VariantUpcycle Variant = "upcycle"
)

type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// HistoryEntry is one completed initial exchange. Entries are never
// mutated after creation, only prepended to the history list.
type HistoryEntry struct {
	ID           string `json:"id"`
	Items        []Item `json:"items"`
	Notes        string `json:"notes"`
	ResponseText string `json:"responseText"`
	Timestamp    string `json:"timestamp"`
}
