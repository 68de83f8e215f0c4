// Utilities for lifting credentials out of a browser "copy as cURL" export.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	curlHeaderFlag = regexp.MustCompile(`(?:-H|--header)\s+(?:'([^']+)'|"([^"]+)")`)
	curlCookieFlag = regexp.MustCompile(`(?:-b|--cookie)\s+(?:'([^']+)'|"([^"]+)")`)
)

// CurlHeaders represents parsed headers and cookies from a cURL command.
type CurlHeaders struct {
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a file containing a cURL command and extracts headers.
func ParseCurlFile(path string) (*CurlHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(string(content))
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// A cookie passed with -b wins over a Cookie header.
func ParseCurlCommand(curlCmd string) (*CurlHeaders, error) {
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	result := &CurlHeaders{Headers: make(map[string]string)}
	for _, m := range curlHeaderFlag.FindAllStringSubmatch(curlCmd, -1) {
		key, value, ok := strings.Cut(firstNonEmpty(m[1], m[2]), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			result.Cookie = value
			continue
		}
		result.Headers[key] = value
	}

	if m := curlCookieFlag.FindStringSubmatch(curlCmd); m != nil {
		result.Cookie = firstNonEmpty(m[1], m[2])
	}

	if len(result.Headers) == 0 && result.Cookie == "" {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidArgument)
	}
	return result, nil
}

// Header returns the value of the named header, matching case-insensitively.
func (c *CurlHeaders) Header(name string) (string, bool) {
	for k, v := range c.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// SoundCloudToken extracts the token from an "Authorization: OAuth <token>" header.
func (c *CurlHeaders) SoundCloudToken() (string, error) {
	auth, ok := c.Header("Authorization")
	if !ok {
		return "", fmt.Errorf("%w: no authorization header in curl command", ErrMissingCredentials)
	}

	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "OAuth") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: authorization header is not an OAuth token", ErrInvalidArgument)
	}
	return strings.TrimSpace(token), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
