package api

// PlaceholderConversationID is returned when the client does not supply a
// conversation id. Conversations are not persisted.
const PlaceholderConversationID = "new_conversation_id"

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	ProviderID     string `json:"provider_id"`
	InstructionID  string `json:"instruction_id"`
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the normalized result of a chat request.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// ConversationIDOrPlaceholder returns the request's conversation id, or the
// placeholder literal when none was supplied.
func (r *ChatRequest) ConversationIDOrPlaceholder() string {
	if r.ConversationID != "" {
		return r.ConversationID
	}
	return PlaceholderConversationID
}
