// Package view builds the display models shared by the editor preview
// and the public share page. Both surfaces render the same projection,
// so they stay identical by construction rather than by duplicated logic.
package view

import (
	"strings"

	"github.com/devlinks/internal/db"
	"github.com/devlinks/internal/links"
)

// platformColors maps platform keys to their brand display color.
var platformColors = map[string]string{
	"github":    "#181717",
	"linkedin":  "#0A66C2",
	"twitter":   "#1DA1F2",
	"youtube":   "#FF0000",
	"facebook":  "#1877F2",
	"instagram": "#E1306C",
}

const defaultColor = "#633CFF"

// LinkView is one rendered link on the profile card.
type LinkView struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	URL      string `json:"url"`
	Color    string `json:"color"`
}

// ProfileCard is the complete display model for one profile.
// Skeleton is set while the record is unresolved; Placeholder is set
// when the record exists but carries zero links.
type ProfileCard struct {
	Skeleton    bool       `json:"skeleton"`
	Placeholder bool       `json:"placeholder"`
	Identity    string     `json:"identity"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Bio         string     `json:"bio"`
	AvatarURL   string     `json:"avatarUrl"`
	Links       []LinkView `json:"links"`
}

// PlatformColor resolves the display color for a platform key,
// falling back to the accent color for anything unrecognized.
func PlatformColor(key string) string {
	if color, ok := platformColors[strings.ToLower(strings.TrimSpace(key))]; ok {
		return color
	}
	return defaultColor
}

// Present projects a user record into a profile card.
// A nil record yields the skeleton card. Link entries come out in the
// fixed platform order regardless of how the record was written.
func Present(rec *db.UserRecord, avatarURL string) ProfileCard {
	if rec == nil {
		return ProfileCard{Skeleton: true}
	}

	card := ProfileCard{
		Identity:  rec.Identity,
		FirstName: deref(rec.FirstName),
		LastName:  deref(rec.LastName),
		Email:     deref(rec.Email),
		Bio:       deref(rec.Bio),
		AvatarURL: avatarURL,
	}

	for _, entry := range links.EntriesFromRecord(rec) {
		card.Links = append(card.Links, LinkView{
			Platform: entry.Platform,
			Label:    links.PlatformLabels[entry.Platform],
			URL:      entry.URL,
			Color:    PlatformColor(entry.Platform),
		})
	}

	card.Placeholder = len(card.Links) == 0
	return card
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
