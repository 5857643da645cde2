package identity

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxCookieChunks bounds how many "<name>.N" chunks are stitched together.
const maxCookieChunks = 16

// sessionCookie reads the session cookie, joining "<name>.0", "<name>.1", ...
// when the session was too large for a single cookie.
func sessionCookie(r *http.Request, name string) string {
	if c, err := r.Cookie(name); err == nil {
		return c.Value
	}

	var b strings.Builder
	for i := 0; i < maxCookieChunks; i++ {
		c, err := r.Cookie(name + "." + strconv.Itoa(i))
		if err != nil {
			break
		}
		b.WriteString(c.Value)
	}
	return b.String()
}

// SessionToken extracts the access token from a session cookie value. The
// value may be the bare token, a JSON array led by the token, a JSON object
// with access_token, or either JSON form encoded as "base64-<data>".
func SessionToken(raw string) string {
	v := strings.TrimSpace(raw)
	if unescaped, err := url.PathUnescape(v); err == nil {
		v = unescaped
	}

	if rest, ok := strings.CutPrefix(v, "base64-"); ok {
		dec, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(rest, "="))
		if err != nil {
			dec, err = base64.StdEncoding.DecodeString(rest)
			if err != nil {
				return ""
			}
		}
		v = strings.TrimSpace(string(dec))
	}

	switch {
	case strings.HasPrefix(v, "["):
		var parts []any
		if err := json.Unmarshal([]byte(v), &parts); err != nil || len(parts) == 0 {
			return ""
		}
		tok, _ := parts[0].(string)
		return tok
	case strings.HasPrefix(v, "{"):
		var sess struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal([]byte(v), &sess); err != nil {
			return ""
		}
		return sess.AccessToken
	default:
		return v
	}
}
