package logging

import (
	"net/url"
	"strings"
)

const (
	// MaskChar is the character used for masking.
	MaskChar = "*"
	// URLMaskLength is how many characters of an unparseable URL are kept.
	URLMaskLength = 30
	// DefaultMaskLength is how many mask characters to show.
	DefaultMaskLength = 3
)

// MaskURL keeps the scheme and host of a visited URL and masks the rest, so
// logs do not record full browsing history.
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		if len(raw) <= URLMaskLength {
			return raw
		}
		return raw[:URLMaskLength] + strings.Repeat(MaskChar, DefaultMaskLength)
	}
	if u.Path == "" && u.RawQuery == "" && u.Fragment == "" {
		return u.Scheme + "://" + u.Host
	}
	return u.Scheme + "://" + u.Host + "/" + strings.Repeat(MaskChar, DefaultMaskLength)
}
