// Package clientip extracts real client IP addresses from HTTP requests.
//
// Proxy headers are checked in priority order before falling back to the
// connection address, so request logs stay meaningful behind load balancers
// and CDNs:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry is the original client)
//  4. X-Real-IP (nginx)
//  5. RemoteAddr (direct connection)
//
// Every candidate is validated with net.ParseIP and normalized; malformed
// values and the unspecified address (0.0.0.0, ::) are skipped.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders in priority order. CDN-set headers win because they cannot be
// spoofed past the edge, while X-Forwarded-For is appended by every hop.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client address for the request. When no header carries a
// valid IP it returns the host part of RemoteAddr, or the raw RemoteAddr if
// even that does not parse. It never returns an empty string for a request
// with a non-empty RemoteAddr.
func GetIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		if header == "X-Forwarded-For" {
			// "client, proxy1, proxy2": only the first entry is the client.
			if i := strings.IndexByte(value, ','); i >= 0 {
				value = value[:i]
			}
		}
		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// normalize validates and canonicalizes a candidate address.
// Returns "" for anything that is not a usable client IP.
func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
