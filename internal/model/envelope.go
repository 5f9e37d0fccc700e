package model

// Envelope is the webhook delivery batch. Each entry may carry direct-message
// events, comment change events, or both; fields absent from the payload stay
// zero-valued, so pipeline code checks shape explicitly instead of traversing
// raw maps.
type Envelope struct {
	Object  string  `json:"object"`
	Entries []Entry `json:"entry"`
}

// Entry is one unit of a webhook delivery batch.
type Entry struct {
	ID        string      `json:"id"`
	Time      int64       `json:"time"`
	Messaging []Messaging `json:"messaging"`
	Changes   []Change    `json:"changes"`
}

// Messaging is a direct-message event. Message is nil for non-message events
// such as read receipts and delivery confirmations.
type Messaging struct {
	Sender    Party    `json:"sender"`
	Recipient Party    `json:"recipient"`
	Timestamp int64    `json:"timestamp"`
	Message   *Message `json:"message"`
}

type Party struct {
	ID string `json:"id"`
}

// Message carries the text payload. IsEcho marks a copy of a message the
// account itself sent; its sender ID is the account's own ID, which the
// identity resolver uses as bootstrap evidence.
type Message struct {
	MID    string `json:"mid"`
	Text   string `json:"text"`
	IsEcho bool   `json:"is_echo"`
}

// Change is a field-change event; only Field == "comments" is processed.
type Change struct {
	Field string  `json:"field"`
	Value Comment `json:"value"`
}

// Comment is the comment payload inside a change event.
type Comment struct {
	ID   string `json:"id"`
	From Party  `json:"from"`
	Text string `json:"text"`
}
