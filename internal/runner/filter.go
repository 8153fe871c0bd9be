package runner

import "strings"

// matchesFilter decides whether the named instance runs under a filter
// expression. Patterns are split on ':'. A pattern starting with '-' is
// negative. The instance runs when it matches no negative pattern and
// either no positive patterns exist or at least one matches.
func matchesFilter(filter, name string) bool {
	if filter == "" {
		return true
	}

	positives := 0
	matched := false
	for _, pat := range strings.Split(filter, ":") {
		if strings.HasPrefix(pat, "-") {
			if globMatch(pat[1:], name) {
				return false
			}
			continue
		}
		positives++
		if globMatch(pat, name) {
			matched = true
		}
	}
	return positives == 0 || matched
}

// globMatch matches byte-wise: '?' consumes exactly one byte, '*' any
// run of bytes including none.
func globMatch(pattern, name string) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}
	switch pattern[0] {
	case '?':
		return len(name) != 0 && globMatch(pattern[1:], name[1:])
	case '*':
		return (len(name) != 0 && globMatch(pattern, name[1:])) || globMatch(pattern[1:], name)
	default:
		return len(name) != 0 && pattern[0] == name[0] && globMatch(pattern[1:], name[1:])
	}
}
