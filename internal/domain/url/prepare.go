// Package url provides navigation target resolution and login-key injection.
package url

import (
	neturl "net/url"
	"strings"
)

// loginKeyParam is the query parameter carrying the login key.
const loginKeyParam = "k"

// Target is the configured navigation destination of a window: absent, a
// literal URL, or a zero-argument callback producing one. The zero value is
// the absent target.
type Target struct {
	literal  string
	callback func() string
	kind     targetKind
}

type targetKind int

const (
	targetNone targetKind = iota
	targetLiteral
	targetCallback
)

// Literal returns a target for a fixed URL string.
func Literal(raw string) Target {
	return Target{literal: raw, kind: targetLiteral}
}

// Callback returns a target whose URL is produced on demand.
func Callback(fn func() string) Target {
	if fn == nil {
		return Target{}
	}
	return Target{callback: fn, kind: targetCallback}
}

// IsZero reports whether the target is absent.
func (t Target) IsZero() bool { return t.kind == targetNone }

// Resolve produces the raw URL for the target. The second return is false
// for the absent target. A callback target invokes its function here; a
// panicking callback propagates to the caller.
func (t Target) Resolve() (string, bool) {
	switch t.kind {
	case targetLiteral:
		return t.literal, true
	case targetCallback:
		return t.callback(), true
	default:
		return "", false
	}
}

// Prepare resolves the target and merges the login key into its query
// string. The second return is false when the target is absent.
func Prepare(target Target, loginKey string) (string, bool) {
	raw, ok := target.Resolve()
	if !ok {
		return "", false
	}
	return MergeLoginKey(raw, loginKey), true
}

// MergeLoginKey injects "k=<key>" into the URL's query string exactly once.
// No query: the pair becomes the whole query. Existing query without the
// pair: the pair is appended. Query already containing the pair: unchanged.
// The operation is idempotent, which matters because show can re-prepare a
// URL that was already prepared on a previous show.
//
// Unparseable input is returned unchanged; navigation proceeds with the raw
// string and the renderer reports the error surface.
func MergeLoginKey(raw, key string) string {
	u, err := neturl.Parse(raw)
	if err != nil {
		return raw
	}

	pair := loginKeyParam + "=" + key

	switch {
	case u.RawQuery == "":
		u.RawQuery = pair
	case strings.Contains(u.RawQuery, pair):
		// Already injected.
	default:
		u.RawQuery = u.RawQuery + "&" + pair
	}

	return u.String()
}
