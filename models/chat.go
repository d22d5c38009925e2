package models

import "time"

// Conversation is an unordered pair of account ids plus a creation
// timestamp. Which participant is "the other party" depends on who is
// looking; see CounterpartOf.
type Conversation struct {
	ConversationID string    `json:"conversationId"`
	AccountID1     string    `json:"accountId1"`
	AccountID2     string    `json:"accountId2"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CounterpartOf returns the participant that is not the viewing account.
func (c *Conversation) CounterpartOf(accountID string) string {
	if c.AccountID2 == accountID {
		return c.AccountID1
	}
	return c.AccountID2
}

// Thread is a conversation resolved for display: the counterpart id and
// its looked-up name. Name is "unknown" when the account lookup failed.
type Thread struct {
	Conversation    Conversation
	CounterpartID   string
	CounterpartName string
}

// Message belongs to exactly one conversation. Ordering is whatever the
// server returned; the client performs no independent sort or caching.
type Message struct {
	MessageID      string    `json:"messageId"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sentAt"`
}
