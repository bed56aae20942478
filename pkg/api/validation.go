package api

import "strings"

// ValidateChatRequest checks a ChatRequest for the fields every chat needs.
// It returns an *APIError describing the first failure, or nil.
func ValidateChatRequest(req *ChatRequest) *APIError {
	if req == nil {
		return NewInvalidRequestError("body", "request body is required")
	}
	if strings.TrimSpace(req.ProviderID) == "" {
		return NewInvalidRequestError("provider_id", "provider_id is required")
	}
	if strings.TrimSpace(req.InstructionID) == "" {
		return NewInvalidRequestError("instruction_id", "instruction_id is required")
	}
	if req.Message == "" {
		return NewInvalidRequestError("message", "message is required")
	}
	return nil
}
