// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateHTTPURL checks that rawURL is an http(s) base URL. The dashboard
// appends resource paths itself, so a path other than "/" or any query
// string is rejected.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", fieldName, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%s host is required", fieldName)
	case u.Path != "" && u.Path != "/":
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, u.Path)
	case u.RawQuery != "" || u.Fragment != "":
		return fmt.Errorf("%s should not contain a query or fragment", fieldName)
	}
	return nil
}
