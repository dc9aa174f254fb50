package model

// ProcessStatus is the outcome of feeding one chat message to the ledger.
type ProcessStatus int

const (
	// StatusProcessed: points were written (inserted, or overwritten under force).
	StatusProcessed ProcessStatus = iota + 1
	// StatusAlreadyProcessed: a row already exists and force was not requested.
	StatusAlreadyProcessed
	// StatusNoActiveWeek: the channel is not bound to a week of an active challenge.
	StatusNoActiveWeek
	// StatusNoEmoji: the message is in a tracked thread but carries no catalog emoji.
	StatusNoEmoji
)

var processStatusNames = map[ProcessStatus]string{
	StatusProcessed:        "processed",
	StatusAlreadyProcessed: "already_processed",
	StatusNoActiveWeek:     "no_active_week",
	StatusNoEmoji:          "no_emoji",
}

func (s ProcessStatus) String() string {
	if name, ok := processStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ProcessStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type ProcessResult struct {
	Status         ProcessStatus `json:"status"`
	WeekID         string        `json:"week_id,omitempty"`
	Points         Breakdown     `json:"points"`
	ResolvedTokens int           `json:"resolved_tokens"`
}

// RescanMessage is one historical message, supplied oldest first.
type RescanMessage struct {
	MessageID uint64 `json:"message_id,string"`
	UserID    uint64 `json:"user_id,string"`
	Content   string `json:"content"`
}

type RescanFailure struct {
	MessageID uint64 `json:"message_id,string"`
	Error     string `json:"error"`
}

type RescanResult struct {
	WeekID         string          `json:"week_id"`
	Succeeded      int             `json:"succeeded"`
	Failed         int             `json:"failed"`
	TotalProcessed int             `json:"total_processed"`
	Failures       []RescanFailure `json:"failures,omitempty"`
	Cancelled      bool            `json:"cancelled"`
}
