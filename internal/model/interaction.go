package model

import "time"

// ChannelKind distinguishes where an exchange happened.
type ChannelKind string

const (
	ChannelComment ChannelKind = "comment"
	ChannelDM      ChannelKind = "dm"
)

// Interaction is one inbound message and the response generated for it.
// Rows are written once and never updated; the last five per user form the
// conversational context for the next response.
type Interaction struct {
	ID           int64
	UserID       string
	ChannelKind  ChannelKind
	MessageText  string
	ResponseText string
	CreatedAt    time.Time
}
