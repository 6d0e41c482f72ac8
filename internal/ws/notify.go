package ws

import (
	"encoding/json"
	"time"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/profile"
)

// MatchFoundEvent tells connected screens a student got matched, so open
// match pages re-resolve instead of sitting on a stale "not matched" view.
type MatchFoundEvent struct {
	Type           string                  `json:"type"`
	UserID         string                  `json:"userId"`
	MatchedAdvisor *profile.AdvisorSummary `json:"matchedAdvisor,omitempty"`
	Timestamp      string                  `json:"timestamp"`
}

func (h *Hub) NotifyMatchFound(userID string, advisor *profile.AdvisorSummary) {
	if h == nil {
		return
	}

	evt := MatchFoundEvent{
		Type:           "match_found",
		UserID:         userID,
		MatchedAdvisor: advisor,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
