package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/service/cart"
)

var positionalPattern = regexp.MustCompile(`#([0-9]+)|\b([1-9])\b`)

// Names of dishes and generic food words that point at one specific
// seed restaurant when nothing else in the message resolves.
var dishKeywords = []struct {
	keyword    string
	restaurant string
}{
	{"margherita", "Mario's Pizzeria"},
	{"pizza", "Mario's Pizzeria"},
	{"caesar", "Green Garden"},
	{"salad", "Green Garden"},
	{"curry", "Spice Route"},
	{"chicken", "Spice Route"},
}

func (r *Router) handleAdd(sess *domain.Session, text string) Reply {
	rec, ok := r.resolveRestaurant(sess, text)
	if !ok {
		return Reply{Text: clarifyText, NoMatch: true}
	}

	store := cart.NewStore(sess.Cart)
	line := store.Add(rec.Name, rec.Featured.Name, rec.Featured.Price)
	sess.Cart = store.Lines()

	return Reply{Text: fmt.Sprintf("Added %s from %s to your cart (x%d). Anything else?", line.Item, line.Restaurant, line.Quantity)}
}

// resolveRestaurant tries, in order: a positional reference into the last
// search results, a restaurant name inside the message, then dish keywords.
func (r *Router) resolveRestaurant(sess *domain.Session, text string) (domain.Restaurant, bool) {
	if match := positionalPattern.FindStringSubmatch(text); match != nil {
		token := match[1]
		if token == "" {
			token = match[2]
		}
		if position, err := strconv.Atoi(token); err == nil {
			if position >= 1 && position <= len(sess.LastResults) {
				if rec, ok := r.catalog.ByID(sess.LastResults[position-1]); ok {
					return rec, true
				}
			}
		}
	}

	if rec, ok := r.catalog.MatchName(text); ok {
		return rec, true
	}

	lowered := strings.ToLower(text)
	for _, dish := range dishKeywords {
		if strings.Contains(lowered, dish.keyword) {
			if rec, ok := r.catalog.ByName(dish.restaurant); ok {
				return rec, true
			}
		}
	}

	return domain.Restaurant{}, false
}
