package service

import (
	"net/url"
	"strings"
)

const DefaultLookupURL = "https://www.medicines.org.uk/emc/search?q="

// LookupURL returns the medicine-information search address for name.
func LookupURL(baseURL, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidf("medication name is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultLookupURL
	}
	return baseURL + url.QueryEscape(name), nil
}
