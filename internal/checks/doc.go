// Package checks manages the lifecycle of accessibility checks and the
// option stores attached to them.
//
// A check is created from either a URL or a raw HTML document. URL-based
// checks share their options with every other check of the same hostname
// through the domain store, so questions answered once (is this image
// decorative, does the site use an icon font) do not come back on the
// next audit of the same site. Raw-HTML checks have no hostname and keep
// their options private.
package checks
