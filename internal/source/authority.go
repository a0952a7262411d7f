// Package source classifies where an article was published
package source

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/credence/internal/model"
)

// Classifier classifies article hosts into authority tiers
type Classifier struct {
	domainMap    map[string]model.AuthorityTier
	primary      []string
	secondary    []string
	pathPatterns []compiledPattern
}

type compiledPattern struct {
	pattern *regexp.Regexp
	tier    model.AuthorityTier
}

// NewClassifier creates a new classifier. Invalid path patterns and tier
// names are skipped; a nil config selects the built-in domain lists.
func NewClassifier(config *model.AuthorityConfig) *Classifier {
	if config == nil {
		defaults := model.DefaultAuthorityConfig()
		config = &defaults
	}

	c := &Classifier{
		domainMap: make(map[string]model.AuthorityTier),
		primary:   normalizeDomains(config.PrimaryDomains),
		secondary: normalizeDomains(config.SecondaryDomains),
	}

	for host, name := range config.DomainMap {
		if tier, err := model.ParseAuthorityTier(name); err == nil {
			c.domainMap[strings.ToLower(host)] = tier
		}
	}

	for _, p := range config.PathPatterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		tier, err := model.ParseAuthorityTier(p.Tier)
		if err != nil {
			continue
		}
		c.pathPatterns = append(c.pathPatterns, compiledPattern{pattern: re, tier: tier})
	}

	return c
}

// Classify classifies a URL into an authority tier. Unparseable URLs are
// TierUnknown; anything not recognised is TierTertiary.
func (c *Classifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.TierUnknown
	}

	host := Host(parsed)

	// 1. Explicit mappings
	if tier, ok := c.domainMap[host]; ok {
		return tier
	}

	// 2. Configured domains, including subdomains
	if matchesDomain(host, c.primary) {
		return model.TierPrimary
	}
	if matchesDomain(host, c.secondary) {
		return model.TierSecondary
	}

	// 3. Path patterns
	for _, cp := range c.pathPatterns {
		if cp.pattern.MatchString(parsed.Path) {
			return cp.tier
		}
	}

	// 4. Government and academic TLDs
	for _, suffix := range []string{".gov", ".edu", ".mil", ".ac.uk", ".gov.uk"} {
		if strings.HasSuffix(host, suffix) {
			return model.TierPrimary
		}
	}

	return model.TierTertiary
}

// Describe builds the source info for an article URL
func (c *Classifier) Describe(rawURL, title string) *model.SourceInfo {
	info := &model.SourceInfo{
		URL:       rawURL,
		Title:     title,
		Authority: c.Classify(rawURL),
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		info.Host = Host(parsed)
	}
	return info
}

// Host returns the lower-cased host of u without port or "www." prefix
func Host(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func matchesDomain(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), ".")
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
