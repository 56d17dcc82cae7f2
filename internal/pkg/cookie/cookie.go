// Package cookie maps signed tokens to HTTP cookies and back. It only builds
// and parses header strings; writing them to a response is the caller's job.
package cookie

import (
	"fmt"
	"net/url"
	"strings"
)

// Cookie names the rest of the platform depends on.
const (
	SessionCookie = "session_token"
	TeacherCookie = "teacher_token"
)

// previewSuffix is the shared platform suffix of preview deployments.
// It is a public suffix: browsers reject Domain=.vercel.app outright.
const previewSuffix = ".vercel.app"

// Options control the attributes of a built Set-Cookie header.
type Options struct {
	MaxAge int    // seconds; 0 clears the cookie
	Domain string // empty means host-only
	Secure bool
}

// ExtractToken parses a Cookie request header and returns the value of the
// named cookie, or "" when absent. Malformed segments are skipped rather than
// failing the whole header.
func ExtractToken(header, name string) string {
	for _, seg := range strings.Split(header, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		k, v, ok := strings.Cut(seg, "=")
		if !ok || k != name {
			continue
		}
		if decoded, err := url.QueryUnescape(v); err == nil {
			return decoded
		}
		return v
	}
	return ""
}

// BuildSetCookie renders a Set-Cookie header for the named cookie. Path,
// HttpOnly and SameSite=Lax are always set; Secure only in production.
func BuildSetCookie(name, tok string, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%s; Path=/; HttpOnly; SameSite=Lax", name, url.QueryEscape(tok))
	if opts.Secure {
		b.WriteString("; Secure")
	}
	if opts.Domain != "" {
		fmt.Fprintf(&b, "; Domain=%s", opts.Domain)
	}
	fmt.Fprintf(&b, "; Max-Age=%d", opts.MaxAge)
	return b.String()
}

// BuildClearCookie renders a Set-Cookie header that expires the named cookie.
func BuildClearCookie(name string, opts Options) string {
	opts.MaxAge = 0
	return BuildSetCookie(name, "", opts)
}

// ComputeDomain returns the cookie Domain attribute for the given request
// host, or "" when the browser default (exact host) is the right scope.
//
// Preview deployments all live under the platform suffix with the team slug
// as the last dash-segment of the first label, e.g. app-git-branch-myteam
// under the suffix. Scoping the cookie to "<team>" + suffix keeps a session
// alive across preview URLs of the same project without ever touching the
// bare public suffix.
func ComputeDomain(host string) string {
	host, _, _ = strings.Cut(host, ":") // strip port
	if host == "localhost" || !strings.HasSuffix(host, previewSuffix) {
		return ""
	}
	label := strings.TrimSuffix(host, previewSuffix)
	if label == "" {
		return ""
	}
	segs := strings.Split(label, "-")
	team := segs[len(segs)-1]
	if team == "" {
		return ""
	}
	return team + previewSuffix
}
