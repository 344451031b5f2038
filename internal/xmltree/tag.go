package xmltree

import (
	"fmt"
	"strings"
	"unicode"

	"h2resconv/internal/errors"
)

// CaseMode selects the case folding applied to tag parts.
type CaseMode int

const (
	CaseKeep CaseMode = iota
	CaseLower
	CaseUpper
)

// TagPolicy is the naming normalization applied to axis labels before
// they become element names. StripSpaces deletes whitespace; otherwise
// each whitespace character becomes an underscore.
type TagPolicy struct {
	Case        CaseMode
	StripSpaces bool
}

// BuildTag derives a stable element name from one or more axis labels,
// joining the normalized parts with underscores. The builder applies
// only the declared whitespace and case policy; a label that still
// violates XML name syntax after that is the caller's problem to
// pre-sanitize, and is reported as an error rather than mutated.
func BuildTag(parts []string, policy TagPolicy) (string, error) {
	normalized := make([]string, len(parts))
	for i, part := range parts {
		normalized[i] = normalizePart(part, policy)
	}
	name := strings.Join(normalized, "_")
	if err := checkName(name); err != nil {
		return "", err
	}
	return name, nil
}

func normalizePart(s string, policy TagPolicy) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			if policy.StripSpaces {
				return -1
			}
			return '_'
		}
		return r
	}, s)
	switch policy.Case {
	case CaseLower:
		return strings.ToLower(s)
	case CaseUpper:
		return strings.ToUpper(s)
	}
	return s
}

// checkName enforces XML element name syntax: a letter or underscore
// first, then letters, digits, hyphens, underscores or dots.
func checkName(name string) error {
	if name == "" {
		return errors.NewValidationError("empty xml element name")
	}
	for i, r := range name {
		if i == 0 {
			if !isNameStart(r) {
				return errors.NewValidationError(fmt.Sprintf("invalid xml element name %q", name))
			}
			continue
		}
		if !isNameChar(r) {
			return errors.NewValidationError(fmt.Sprintf("invalid xml element name %q", name))
		}
	}
	return nil
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || r == '.' || unicode.IsDigit(r)
}
