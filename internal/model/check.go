package model

import (
	"net/url"
	"time"
)

// Check is one accessibility audit session. It is created from either a URL
// or a raw HTML blob; when a URL is supplied the fetched HTML is resolved
// and stored, so HTML is always populated.
//
// Options are not stored on the struct: they live in the persistence layer
// as a flat key/value mapping, either private to the check or delegated to
// the Domain record for the check's hostname (see Hostname).
type Check struct {
	// ID is the opaque check identifier.
	ID int64 `json:"id"`

	// URL is the address the HTML was fetched from, or empty when raw
	// HTML was submitted directly.
	URL string `json:"url,omitempty"`

	// HTML is the full HTML snapshot being audited.
	HTML string `json:"html"`

	// Title is the document title, extracted at creation time. Extraction
	// doubles as the parseability gate: a check without an extractable
	// title is never created.
	Title string `json:"title"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Hostname returns the hostname of the check's URL, or empty when the check
// was created from raw HTML. Checks with a hostname delegate their options
// to the shared Domain record so repeated checks of the same site reuse
// previously answered questions.
func (c *Check) Hostname() string {
	if c.URL == "" {
		return ""
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Domain is a shared option store keyed by hostname. It is created lazily
// the first time a URL with an unseen hostname is checked and is never
// deleted by normal flow.
type Domain struct {
	// Host is the hostname identifying the domain.
	Host string `json:"host"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// GlobalOptionPrefix marks option keys that configure all rules at once
// rather than persisting a single rule's answer.
const GlobalOptionPrefix = "global_"
