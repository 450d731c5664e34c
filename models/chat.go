package models

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatReply struct {
	Reply   string `json:"reply"`
	Matched string `json:"matched,omitempty"`
}
