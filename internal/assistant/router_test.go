package assistant_test

import (
	"strings"
	"testing"

	"github.com/noshnavigator/nosh-cli/internal/assistant"
	"github.com/noshnavigator/nosh-cli/internal/catalog"
	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/service/search"
)

func newRouter() *assistant.Router {
	seed := catalog.Seed()
	return assistant.NewRouter(seed, search.NewRanker(seed))
}

func TestProcessEmptyMessageClarifies(t *testing.T) {
	sess := domain.Session{}
	reply := newRouter().Process(&sess, nil, "   ")
	if !strings.Contains(reply.Text, "cheapest italian") {
		t.Fatalf("expected clarifying prompt, got %q", reply.Text)
	}
	if reply.Signal != assistant.SignalNone {
		t.Fatalf("unexpected signal %v", reply.Signal)
	}
}

func TestProcessClearResetsHistory(t *testing.T) {
	sess := domain.Session{
		History:     []domain.ChatMessage{{Role: "user", Content: "pizza"}},
		LastResults: []int{1},
	}
	reply := newRouter().Process(&sess, nil, "CLEAR")
	if reply.Signal != assistant.SignalHistoryCleared {
		t.Fatalf("expected history-cleared signal, got %v", reply.Signal)
	}
	if len(sess.History) != 0 || len(sess.LastResults) != 0 {
		t.Fatalf("expected empty session state, got %+v", sess)
	}
}

func TestProcessResetAlsoClears(t *testing.T) {
	sess := domain.Session{History: []domain.ChatMessage{{Role: "user", Content: "hi"}}}
	reply := newRouter().Process(&sess, nil, "reset")
	if reply.Signal != assistant.SignalHistoryCleared || len(sess.History) != 0 {
		t.Fatalf("expected reset, got signal %v history %v", reply.Signal, sess.History)
	}
}

func TestProcessHelpVariants(t *testing.T) {
	for _, msg := range []string{"help", "?", "what can you do", "how do I order"} {
		sess := domain.Session{}
		reply := newRouter().Process(&sess, nil, msg)
		if !strings.Contains(reply.Text, "show cart") {
			t.Fatalf("expected capability summary for %q, got %q", msg, reply.Text)
		}
	}
}

func TestProcessShowCartSignals(t *testing.T) {
	sess := domain.Session{}
	reply := newRouter().Process(&sess, nil, "show me the cart")
	if reply.Signal != assistant.SignalShowCart {
		t.Fatalf("expected show-cart signal, got %v", reply.Signal)
	}
}

func TestProcessSearchRemembersResults(t *testing.T) {
	sess := domain.Session{}
	reply := newRouter().Process(&sess, nil, "cheapest italian")
	if !strings.Contains(reply.Text, "Mario's Pizzeria") {
		t.Fatalf("expected Mario's Pizzeria, got %q", reply.Text)
	}
	if len(sess.LastResults) != 1 || sess.LastResults[0] != 1 {
		t.Fatalf("expected last results [1], got %v", sess.LastResults)
	}
}

func TestProcessSearchIncludesFeaturedItem(t *testing.T) {
	sess := domain.Session{}
	reply := newRouter().Process(&sess, nil, "fastest salad")
	if !strings.Contains(reply.Text, "Caesar Salad") || !strings.Contains(reply.Text, "$14.99") {
		t.Fatalf("expected featured item prompt, got %q", reply.Text)
	}
}

func TestProcessSearchNoMatch(t *testing.T) {
	sess := domain.Session{LastResults: []int{1}}
	reply := newRouter().Process(&sess, nil, "premium indian")
	if !strings.Contains(reply.Text, "No restaurants matched") {
		t.Fatalf("expected no-match reply, got %q", reply.Text)
	}
	if len(sess.LastResults) != 0 {
		t.Fatalf("expected last results cleared, got %v", sess.LastResults)
	}
}

func TestProcessSearchAnnotatesDistance(t *testing.T) {
	sess := domain.Session{}
	loc := domain.Location{Lat: 37.783, Lon: -122.41}
	reply := newRouter().Process(&sess, &loc, "pizza")
	if !strings.Contains(reply.Text, "mi") {
		t.Fatalf("expected distance annotation, got %q", reply.Text)
	}
}

func TestProcessAddPositionalAfterSearch(t *testing.T) {
	router := newRouter()
	sess := domain.Session{}
	router.Process(&sess, nil, "show me everything tasty")
	if len(sess.LastResults) < 2 {
		t.Fatalf("expected at least two results, got %v", sess.LastResults)
	}
	secondID := sess.LastResults[1]

	reply := router.Process(&sess, nil, "add #2")
	want, _ := catalog.Seed().ByID(secondID)
	if !strings.Contains(reply.Text, want.Featured.Name) {
		t.Fatalf("expected %s added, got %q", want.Featured.Name, reply.Text)
	}
	if len(sess.Cart) != 1 || sess.Cart[0].Restaurant != want.Name {
		t.Fatalf("expected cart line for %s, got %+v", want.Name, sess.Cart)
	}
}

func TestProcessAddByRestaurantName(t *testing.T) {
	sess := domain.Session{}
	reply := newRouter().Process(&sess, nil, "order from Spice Route please")
	if !strings.Contains(reply.Text, "Chicken Curry") {
		t.Fatalf("expected Chicken Curry added, got %q", reply.Text)
	}
}

func TestProcessAddByDishKeyword(t *testing.T) {
	sess := domain.Session{}
	reply := newRouter().Process(&sess, nil, "add a margherita")
	if !strings.Contains(reply.Text, "Mario's Pizzeria") {
		t.Fatalf("expected pizzeria add, got %q", reply.Text)
	}
}

func TestProcessAddMergesRepeatedLines(t *testing.T) {
	router := newRouter()
	sess := domain.Session{}
	router.Process(&sess, nil, "add a caesar salad")
	router.Process(&sess, nil, "add a caesar salad")
	if len(sess.Cart) != 1 || sess.Cart[0].Quantity != 2 {
		t.Fatalf("expected one merged line with quantity 2, got %+v", sess.Cart)
	}
}

func TestProcessAddUnresolvableClarifies(t *testing.T) {
	sess := domain.Session{}
	reply := newRouter().Process(&sess, nil, "add something delicious")
	if !strings.Contains(reply.Text, "not sure") {
		t.Fatalf("expected clarifying prompt, got %q", reply.Text)
	}
	if len(sess.Cart) != 0 {
		t.Fatalf("expected empty cart, got %+v", sess.Cart)
	}
}

func TestProcessAppendsHistory(t *testing.T) {
	sess := domain.Session{}
	newRouter().Process(&sess, nil, "help")
	if len(sess.History) != 2 {
		t.Fatalf("expected user and assistant turns, got %+v", sess.History)
	}
	if sess.History[0].Role != "user" || sess.History[1].Role != "assistant" {
		t.Fatalf("unexpected roles %+v", sess.History)
	}
}
