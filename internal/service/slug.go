package service

import "strings"

// Slugify derives a URL-safe slug from a post title: lowercase, runs of
// non-alphanumeric characters collapsed into single hyphens, no leading or
// trailing hyphen. Collisions are not de-duplicated; two posts with the same
// title share a slug.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
