// Package fetch retrieves the HTML document of a URL-based check.
//
// Design decision: Fetching is isolated in its own package instead of
// living inside the check service because the service's tests should not
// need network access, and alternative transports (an authenticated
// client, a headless browser snapshotter) can be swapped in behind the
// same small interface.
package fetch
