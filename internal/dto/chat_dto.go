package dto

type AskRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Question  string `json:"question"`
	// MemoryType optionally switches the memory policy before answering.
	// Switching discards prior history.
	MemoryType string `json:"memory_type,omitempty"`
}

type SourceDTO struct {
	SourceId string `json:"source_id"`
	Text     string `json:"text"`
}

type AskResponse struct {
	SessionId string      `json:"session_id"`
	Question  string      `json:"question"`
	Answer    string      `json:"answer"`
	Sources   []SourceDTO `json:"sources"`
	TurnCount int         `json:"turn_count"`
}

type ClearMemoryRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type SwitchMemoryRequest struct {
	SessionId  string `json:"session_id" validate:"required"`
	MemoryType string `json:"memory_type" validate:"required"`
}

type TurnDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Ordinal  int    `json:"ordinal"`
}

type MemorySummaryResponse struct {
	SessionId       string    `json:"session_id"`
	TurnCount       int       `json:"turn_count"`
	MemoryType      string    `json:"memory_type"`
	RecentTurns     []TurnDTO `json:"recent_turns"`
	EstimatedTokens int       `json:"estimated_tokens"`
}

type CreateSessionResponse struct {
	Id string `json:"id"`
}
