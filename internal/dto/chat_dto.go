package dto

import "github.com/google/uuid"

type SendChatRequest struct {
	ConversationId *uuid.UUID `json:"conversation_id"`
	Message        string     `json:"message" validate:"required,min=1,max=8000"`
}

type SendChatResponse struct {
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	Title          string     `json:"title,omitempty"`
	Reply          MessageDTO `json:"reply"`
	Intent         string     `json:"intent"`
	Persisted      bool       `json:"persisted"`
}
