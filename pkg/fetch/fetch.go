// Package fetch downloads single HTML pages over a raw HTTP/1.1 socket.
//
// The fetcher intentionally sits below net/http: it opens one connection per
// request, sends a minimal GET with Connection: close, and owns the redirect
// budget itself so the crawler's accounting stays exact.
package fetch

import (
	"bufio"
	"crypto/tls"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// statusKey is the sentinel header key under which the raw status line is
// stored, since the status line carries no header name of its own.
const statusKey = "no-name"

// Fetch performs an HTTP/1.1 GET against rawurl. It returns the body and true
// only when the response is status 200 with a text/html content type. A status
// in [300, 399] with a Location header is followed while redirects remaining
// hops are left. Every other outcome — other statuses, non-HTML content,
// malformed URLs, I/O errors — yields ("", false) and never an error; failures
// at this layer are ordinary crawl outcomes, not faults.
func Fetch(rawurl string, redirects int) (string, bool) {
	for {
		u, err := url.Parse(rawurl)
		if err != nil {
			slog.Debug("fetch: malformed url", "url", rawurl, "error", err)
			return "", false
		}

		headers, body, ok := request(u)
		if !ok {
			return "", false
		}

		status := statusCode(headers)

		switch {
		case status == 200:
			if !isHTML(headers) {
				slog.Debug("fetch: not html", "url", rawurl)
				return "", false
			}

			return body, true
		case status >= 300 && status <= 399 && redirects > 0:
			target, ok := redirectTarget(u, headers)
			if !ok {
				return "", false
			}

			slog.Debug("fetch: redirect", "from", rawurl, "to", target, "remaining", redirects-1)

			rawurl = target
			redirects--
		default:
			slog.Debug("fetch: unusable response", "url", rawurl, "status", status)
			return "", false
		}
	}
}

// request performs one GET round trip and returns the parsed headers and body.
func request(u *url.URL) (map[string][]string, string, bool) {
	conn, ok := dial(u)
	if !ok {
		return nil, "", false
	}

	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("fetch: close failed", "host", u.Host, "error", err)
		}
	}()

	target := u.RequestURI()

	var req strings.Builder

	req.WriteString("GET " + target + " HTTP/1.1\r\n")
	req.WriteString("Host: " + u.Hostname() + "\r\n")
	req.WriteString("Connection: close\r\n")
	req.WriteString("\r\n")

	if _, err := io.WriteString(conn, req.String()); err != nil {
		slog.Debug("fetch: write failed", "url", u.String(), "error", err)
		return nil, "", false
	}

	r := bufio.NewReader(conn)

	headers, ok := readHeaders(r)
	if !ok {
		return nil, "", false
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		slog.Debug("fetch: read body failed", "url", u.String(), "error", err)
		return nil, "", false
	}

	return headers, string(raw), true
}

// dial opens the connection, negotiating TLS for https and plain TCP
// otherwise. The default port follows the scheme.
func dial(u *url.URL) (net.Conn, bool) {
	host := u.Hostname()
	port := u.Port()

	var (
		conn net.Conn
		err  error
	)

	if u.Scheme == "https" {
		if port == "" {
			port = "443"
		}

		conn, err = tls.Dial("tcp", net.JoinHostPort(host, port), &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12})
	} else {
		if port == "" {
			port = "80"
		}

		conn, err = net.Dial("tcp", net.JoinHostPort(host, port))
	}

	if err != nil {
		slog.Debug("fetch: dial failed", "host", host, "error", err)
		return nil, false
	}

	return conn, true
}

// readHeaders reads the status line and header block up to the blank line.
// The status line is stored under the statusKey sentinel; header values are
// split on ": " and accumulated per lowercased name.
func readHeaders(r *bufio.Reader) (map[string][]string, bool) {
	headers := make(map[string][]string)

	for first := true; ; first = false {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return nil, false
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return headers, true
		}

		if first {
			headers[statusKey] = append(headers[statusKey], line)
			continue
		}

		name, value, found := strings.Cut(line, ": ")
		if !found {
			headers[statusKey] = append(headers[statusKey], line)
			continue
		}

		name = strings.ToLower(name)
		headers[name] = append(headers[name], value)
	}
}

// statusCode extracts the numeric status from the stored status line, or 0
// when the response is malformed.
func statusCode(headers map[string][]string) int {
	lines := headers[statusKey]
	if len(lines) == 0 {
		return 0
	}

	fields := strings.Fields(lines[0])
	if len(fields) < 2 {
		return 0
	}

	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}

	return code
}

// isHTML reports whether the Content-Type header begins with text/html,
// case-insensitively.
func isHTML(headers map[string][]string) bool {
	for _, v := range headers["content-type"] {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(v)), "text/html") {
			return true
		}
	}

	return false
}

// redirectTarget resolves the Location header against the request URL.
func redirectTarget(u *url.URL, headers map[string][]string) (string, bool) {
	locs := headers["location"]
	if len(locs) == 0 {
		slog.Debug("fetch: redirect without location", "url", u.String())
		return "", false
	}

	ref, err := url.Parse(strings.TrimSpace(locs[0]))
	if err != nil {
		slog.Debug("fetch: bad redirect target", "url", u.String(), "location", locs[0], "error", err)
		return "", false
	}

	return u.ResolveReference(ref).String(), true
}
