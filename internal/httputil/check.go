// Package httputil has helpers for dealing with HTTP responses.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// CheckResponse returns an error if the response's status code is not one of
// the provided acceptable codes. The error includes the start of the response
// body when it can be read, as mirrors tend to return useful text on errors.
func CheckResponse(resp *http.Response, acceptable ...int) error {
	if slices.Contains(acceptable, resp.StatusCode) {
		return nil
	}
	snippet, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil || len(snippet) == 0 {
		return fmt.Errorf("unexpected status code: %s", resp.Status)
	}
	return fmt.Errorf("unexpected status code: %s (body starts: %q)",
		resp.Status, strings.ToValidUTF8(string(snippet), "�"))
}
