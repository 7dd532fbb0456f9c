package chat

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Response    string   `json:"response"`
	Sentiment   string   `json:"sentiment,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
