// Package model defines the domain types used across the application.
package model

// Session is one announced discussion scraped from the source page.
// Title is never empty; Date and Link may be empty when the markup is degraded.
type Session struct {
	Title string
	Date  string
	Link  string
}

// ChannelKind classifies a channel on the chat platform.
type ChannelKind string

// Supported channel kinds. Only forum channels are managed.
const (
	KindForum ChannelKind = "forum"
	KindOther ChannelKind = "other"
)

// Channel is a snapshot view of an existing channel in the workspace.
type Channel struct {
	ID       string
	Name     string
	Kind     ChannelKind
	ParentID string
}

// CreateChannelRequest asks the channel-management API to create a channel.
type CreateChannelRequest struct {
	Name           string
	Kind           ChannelKind
	ParentCategory string
	Topic          string
}
