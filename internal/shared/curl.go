// Utilities for parsing cURL commands copied from a browser's network tab.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlHeaders represents parsed headers and cookies from a cURL command.
type CurlHeaders struct {
	Headers map[string]string
	Cookie  string
}

var (
	curlHeaderPattern = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookiePattern = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlFile reads a file containing a cURL command and extracts headers.
func ParseCurlFile(path string) (*CurlHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// The cookie may arrive either as a -b flag or as a Cookie header; both land
// in the Cookie field, with -b taking precedence when both are present.
func ParseCurlCommand(data []byte) (*CurlHeaders, error) {
	cmd := strings.ReplaceAll(string(data), "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\", "")

	parsed := &CurlHeaders{Headers: make(map[string]string)}

	for _, match := range curlHeaderPattern.FindAllStringSubmatch(cmd, -1) {
		line := match[1]
		if line == "" {
			line = match[2]
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if strings.EqualFold(key, "cookie") {
			parsed.Cookie = value
			continue
		}
		parsed.Headers[key] = value
	}

	if match := curlCookiePattern.FindStringSubmatch(cmd); len(match) > 1 {
		if match[1] != "" {
			parsed.Cookie = match[1]
		} else {
			parsed.Cookie = match[2]
		}
	}

	if len(parsed.Headers) == 0 && parsed.Cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return parsed, nil
}

// ToHeaderMap flattens the parsed command into the header map consumed by the
// YouTube Music client, with the cookie under its canonical header name.
func (c *CurlHeaders) ToHeaderMap() map[string]string {
	headers := make(map[string]string, len(c.Headers)+1)
	for key, value := range c.Headers {
		headers[key] = value
	}

	if c.Cookie != "" {
		headers["Cookie"] = c.Cookie
	}

	return headers
}
