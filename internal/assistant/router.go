package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/noshnavigator/nosh-cli/internal/catalog"
	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/geo"
	"github.com/noshnavigator/nosh-cli/internal/service/search"
)

// Signal tells the caller about a side effect a reply implies.
type Signal int

const (
	SignalNone Signal = iota
	// SignalShowCart asks the caller to surface the cart view.
	SignalShowCart
	// SignalHistoryCleared reports that the conversation was reset.
	SignalHistoryCleared
)

// Reply is the assistant's answer to one message. NoMatch marks replies
// where nothing in the catalog answered the request, so callers may try
// a remote fallback.
type Reply struct {
	Text    string
	Signal  Signal
	NoMatch bool
}

var (
	helpPattern     = regexp.MustCompile(`(?i)^(help|\?)|what can you do|how to|how do`)
	showCartPattern = regexp.MustCompile(`(?i)\b(show|view|open)\b.*\bcart\b`)
	addPattern      = regexp.MustCompile(`(?i)\b(add|order|buy|put)\b`)
)

const helpText = "I can help you find restaurants and order food. Try:\n" +
	"- \"cheapest italian\" or \"fastest salad\" to search\n" +
	"- \"add margherita pizza\" or \"add #1\" to order\n" +
	"- \"show cart\" to review your order\n" +
	"- \"clear\" to start over"

const clarifyText = "I'm not sure what you'd like to order. Try naming a dish, a restaurant, or a result number like \"add #1\"."

// Router classifies chat messages and dispatches them. Intents are
// checked in priority order, first match wins.
type Router struct {
	catalog *catalog.Catalog
	ranker  *search.Ranker
}

// NewRouter creates an intent router over the catalog.
func NewRouter(c *catalog.Catalog, ranker *search.Ranker) *Router {
	return &Router{catalog: c, ranker: ranker}
}

// Process handles one chat message, mutating the session (history, cart,
// last results) as the resolved intent requires.
func (r *Router) Process(sess *domain.Session, location *domain.Location, text string) Reply {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return r.record(sess, trimmed, Reply{Text: "Say something like \"cheapest italian\" or \"add margherita pizza\"."})
	}

	if lowered := strings.ToLower(trimmed); lowered == "clear" || lowered == "reset" {
		sess.History = nil
		sess.LastResults = nil
		return Reply{Text: "Conversation cleared. What are you hungry for?", Signal: SignalHistoryCleared}
	}

	if helpPattern.MatchString(trimmed) {
		return r.record(sess, trimmed, Reply{Text: helpText})
	}

	if showCartPattern.MatchString(trimmed) {
		return r.record(sess, trimmed, Reply{Text: "Opening your cart.", Signal: SignalShowCart})
	}

	if addPattern.MatchString(trimmed) {
		return r.record(sess, trimmed, r.handleAdd(sess, trimmed))
	}

	return r.record(sess, trimmed, r.handleSearch(sess, location, trimmed))
}

func (r *Router) record(sess *domain.Session, userText string, reply Reply) Reply {
	if userText != "" {
		sess.History = append(sess.History, domain.ChatMessage{Role: "user", Content: userText})
	}
	sess.History = append(sess.History, domain.ChatMessage{Role: "assistant", Content: reply.Text})
	return reply
}

func (r *Router) handleSearch(sess *domain.Session, location *domain.Location, text string) Reply {
	filter := search.ParseFilter(text)
	results := r.ranker.Rank(filter, location)
	if len(results) == 0 {
		sess.LastResults = nil
		return Reply{Text: "No restaurants matched that. Try \"italian\", \"salad\", \"spicy\", or a price like \"$\" or \"cheap\".", NoMatch: true}
	}

	sess.LastResults = make([]int, 0, len(results))
	lines := make([]string, 0, len(results)+1)
	lines = append(lines, "Here's what I found:")
	for i, result := range results {
		sess.LastResults = append(sess.LastResults, result.Restaurant.ID)
		lines = append(lines, formatResult(i+1, result))
	}
	return Reply{Text: strings.Join(lines, "\n")}
}

func formatResult(position int, result domain.RankedResult) string {
	rec := result.Restaurant
	distance := "—"
	if result.Distance != nil {
		distance = geo.FormatMiles(*result.Distance)
	}
	return fmt.Sprintf("%d. %s — %s · %s · ⭐ %.1f · %s · %s — try the %s ($%.2f)",
		position,
		rec.Name,
		strings.Join(rec.Cuisines, ", "),
		rec.Price.Symbol(),
		rec.Rating,
		rec.ETA,
		distance,
		rec.Featured.Name,
		rec.Featured.Price,
	)
}
