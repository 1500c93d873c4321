// Package reconcile decides which session channels need to be created.
package reconcile

import (
	"strings"
	"unicode"

	"discussion_bot/internal/model"
)

// Normalize lowercases s and drops every whitespace and hyphen character.
// Titles whose normalized forms are equal name the same channel.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// Skip records a session that already has a channel.
type Skip struct {
	Session model.Session
	Channel model.Channel
}

// Plan is the outcome of reconciling one scrape against the channel snapshot.
type Plan struct {
	Create []model.CreateChannelRequest
	Skip   []Skip
}

// Reconcile returns a create request for every session without a matching
// forum channel in existing. A channel matches when its normalized name equals
// the normalized session title and it is a forum.
//
// Each session is decided against existing alone: requests planned earlier in
// the same batch are not taken into account.
func Reconcile(existing []model.Channel, sessions []model.Session, categoryID string) Plan {
	forums := make(map[string]model.Channel, len(existing))
	for _, ch := range existing {
		if ch.Kind != model.KindForum {
			continue
		}
		key := Normalize(ch.Name)
		if _, ok := forums[key]; !ok {
			forums[key] = ch
		}
	}

	var plan Plan
	for _, s := range sessions {
		if ch, ok := forums[Normalize(s.Title)]; ok {
			plan.Skip = append(plan.Skip, Skip{Session: s, Channel: ch})
			continue
		}
		plan.Create = append(plan.Create, model.CreateChannelRequest{
			Name:           s.Title,
			Kind:           model.KindForum,
			ParentCategory: categoryID,
			Topic:          s.Date,
		})
	}
	return plan
}
