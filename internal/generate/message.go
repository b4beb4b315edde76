package generate

import "strings"

// CleanMessage normalizes a raw model completion into a usable commit
// message: surrounding whitespace, wrapping code fences, and wrapping
// quotes are stripped. Cleaning runs to a fixed point, so cleaning an
// already-clean message returns it unchanged.
func CleanMessage(raw string) string {
	s := raw
	for {
		next := cleanOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func cleanOnce(s string) string {
	s = strings.TrimSpace(s)
	s = stripFence(s)
	s = stripWrappingQuotes(s)
	return strings.TrimSpace(s)
}

// stripFence removes one well-formed wrapping code fence, with or without
// a language tag on the opening line. Fences that appear inside the
// message rather than around it are left alone.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := s[3:]
	nl := strings.Index(rest, "\n")
	if nl < 0 {
		return s
	}
	if tag := strings.TrimSpace(rest[:nl]); tag != "" && !isFenceTag(tag) {
		return s
	}
	body := strings.TrimRight(rest[nl+1:], " \t\n")
	if !strings.HasSuffix(body, "```") {
		return s
	}
	body = strings.TrimSuffix(body, "```")
	if strings.Contains(body, "```") {
		return s
	}
	return body
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// stripWrappingQuotes removes one pair of matching quotes or backticks
// wrapping the whole message.
func stripWrappingQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last {
		return s
	}
	switch first {
	case '"', '\'', '`':
		return s[1 : len(s)-1]
	}
	return s
}
