package client

import (
	"net/url"
	"strings"
)

// escape quotes a name or key as one path segment. Every byte outside the
// unreserved set is percent-encoded, "/" included.
func escape(segment string) string {
	return strings.ReplaceAll(url.QueryEscape(segment), "+", "%20")
}

// normalizeName turns a schema child name into its lookup name.
func normalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// childURI returns the collection URI of a schema child below parent.
func childURI(parent, name string) string {
	return strings.TrimSuffix(parent, "/") + "/" + escape(name) + "/"
}
