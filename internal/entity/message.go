package entity

import "time"

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is one turn half inside a conversation's embedded message array.
type Message struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
