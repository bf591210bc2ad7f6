package dataprocessing

import (
	"regexp"
	"strings"
)

var (
	nameWhitespace = regexp.MustCompile(`\s+`)
	legalSuffix    = regexp.MustCompile(`(?i)\s+(pvt\.?\s*ltd\.?|private\s*limited|ltd\.?|limited|inc\.?|incorporated|corp\.?|corporation)\s*$`)
)

// CleanStartupName trims the name, turns newlines into spaces and collapses
// whitespace runs. With stripSuffix, one trailing legal suffix such as
// "Pvt. Ltd." or "Inc" is removed.
func CleanStartupName(name string, stripSuffix bool) string {
	s := strings.TrimSpace(name)
	s = nameWhitespace.ReplaceAllString(s, " ")
	if stripSuffix {
		s = strings.TrimSpace(legalSuffix.ReplaceAllString(s, ""))
	}
	return s
}
