package model

import (
	"fmt"
	"strings"
	"time"
)

// Article is a piece of news text ready for analysis
type Article struct {
	Title     string     `json:"title,omitempty"`
	Body      string     `json:"body"`
	URL       string     `json:"url,omitempty"`
	Published *time.Time `json:"published,omitempty"`
}

// Text joins title and body the way they are fed to the engine
func (a Article) Text() string {
	title := strings.TrimSpace(a.Title)
	body := strings.TrimSpace(a.Body)
	switch {
	case title == "" || strings.HasPrefix(body, title):
		return body
	case body == "":
		return title
	default:
		return title + "\n\n" + body
	}
}

// SourceInfo describes where an analysed text came from
type SourceInfo struct {
	URL       string        `json:"url,omitempty"`
	Title     string        `json:"title,omitempty"`
	Host      string        `json:"host,omitempty"`
	Authority AuthorityTier `json:"authority"`
	Published *time.Time    `json:"published,omitempty"`
	FromCache bool          `json:"from_cache,omitempty"`
}

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not classified (pasted text, local files)
	TierPrimary   AuthorityTier = 1 // Government, academic and official publishers
	TierSecondary AuthorityTier = 2 // Wire services and major outlets
	TierTertiary  AuthorityTier = 3 // Blogs, aggregators, everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// MarshalText renders the tier by name in JSON and YAML
func (t AuthorityTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText
func (t *AuthorityTier) UnmarshalText(b []byte) error {
	tier, err := ParseAuthorityTier(string(b))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// ParseAuthorityTier converts a tier name to an AuthorityTier
func ParseAuthorityTier(name string) (AuthorityTier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "primary":
		return TierPrimary, nil
	case "secondary":
		return TierSecondary, nil
	case "tertiary":
		return TierTertiary, nil
	case "unknown", "":
		return TierUnknown, nil
	default:
		return TierUnknown, fmt.Errorf("unknown authority tier %q", name)
	}
}
