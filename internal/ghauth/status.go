package ghauth

import (
	"strings"
)

// tokenLinePrefix marks the masked token line inside a host block.
const tokenLinePrefix = "- Token:"

// StatusHost is one host block from `gh auth status`.
type StatusHost struct {
	Host     string
	HasToken bool
}

// ParseStatus reads the human-readable `gh auth status` listing.
//
// Grammar, line by line:
//
//	header   = non-blank line with no leading whitespace that does not
//	           start with a status glyph (✓ ✗ X) or "-"
//	tokenln  = leading whitespace, then "- Token:" ...
//
// Every other line is ignored. Hosts are returned in listing order; a host
// appearing twice is reported once, with HasToken set if any block for it
// carried a token line.
func ParseStatus(listing string) []StatusHost {
	var hosts []StatusHost
	index := make(map[string]int)
	current := -1

	for _, raw := range strings.Split(listing, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if line == "" {
			continue
		}

		if isHeaderLine(line) {
			host := strings.TrimSuffix(line, ":")
			if i, ok := index[host]; ok {
				current = i
				continue
			}
			index[host] = len(hosts)
			current = len(hosts)
			hosts = append(hosts, StatusHost{Host: host})
			continue
		}

		if current >= 0 && isTokenLine(line) {
			hosts[current].HasToken = true
		}
	}

	return hosts
}

// TokenHosts returns, in order, the hosts that carry a token line.
func TokenHosts(listing string) []string {
	var out []string
	for _, h := range ParseStatus(listing) {
		if h.HasToken {
			out = append(out, h.Host)
		}
	}
	return out
}

func isHeaderLine(line string) bool {
	switch line[0] {
	case ' ', '\t':
		return false
	}
	for _, prefix := range []string{"✓", "✗", "X ", "-", "!"} {
		if strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

func isTokenLine(line string) bool {
	if line[0] != ' ' && line[0] != '\t' {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), tokenLinePrefix)
}
