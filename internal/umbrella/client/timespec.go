package client

import (
	"regexp"
	"strconv"
	"time"
)

// Time filters accept the literal "now", an absolute epoch string, or a
// relative expression such as "-30minutes" or "-1week".
var (
	relativeSpec = regexp.MustCompile(`^-(\d+)(minute|hour|day|week)s?$`)
	absoluteSpec = regexp.MustCompile(`^\d+$`)
)

var unitSeconds = map[string]int64{
	"minute": 60,
	"hour":   3600,
	"day":    86400,
	"week":   604800,
}

// resolveTimeSpec resolves a time filter against now, returning the absolute
// epoch value to place in the query string. Absolute epoch strings pass
// through unchanged.
func resolveTimeSpec(spec string, now time.Time) (string, error) {
	if spec == "now" {
		return strconv.FormatInt(now.Unix(), 10), nil
	}
	if absoluteSpec.MatchString(spec) {
		return spec, nil
	}

	match := relativeSpec.FindStringSubmatch(spec)
	if match == nil {
		return "", &ParseError{Input: spec}
	}

	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return "", &ParseError{Input: spec}
	}

	return strconv.FormatInt(now.Unix()-n*unitSeconds[match[2]], 10), nil
}
