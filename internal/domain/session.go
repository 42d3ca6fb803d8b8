package domain

// ChatMessage is one conversation turn kept in the session history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the state one user accumulates across command invocations:
// the cart, the chat history, the restaurants returned by the latest
// search, and the cached device location.
type Session struct {
	Cart        []CartLine      `json:"cart,omitempty"`
	History     []ChatMessage   `json:"history,omitempty"`
	LastResults []int           `json:"last_results,omitempty"`
	Location    *CachedLocation `json:"location,omitempty"`
}
