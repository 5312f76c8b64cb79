package core

import (
	"fmt"
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)

// NormalizeSpaces collapses every whitespace run to a single space and trims
// leading and trailing whitespace.
func NormalizeSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// NormalizeCompare is the case-folded form of NormalizeSpaces. It is used
// only for equality checks and is never stored.
func NormalizeCompare(s string) string {
	return strings.ToLower(NormalizeSpaces(s))
}

// CleanMembers normalizes every member field and assigns default roles.
//
// Human-entered free text (name, clg, dept) gets full whitespace collapsing;
// the remaining fields are only trimmed. A member with no role becomes
// "Leader" at index 0 and "Member N" otherwise.
func CleanMembers(members []Member) []Member {
	cleaned := make([]Member, len(members))
	for i, m := range members {
		c := Member{
			Role:   strings.TrimSpace(m.Role),
			Name:   NormalizeSpaces(m.Name),
			Clg:    NormalizeSpaces(m.Clg),
			Dept:   NormalizeSpaces(m.Dept),
			Email:  strings.TrimSpace(m.Email),
			Mobile: strings.TrimSpace(m.Mobile),
			Gender: strings.TrimSpace(m.Gender),
			Degree: strings.TrimSpace(m.Degree),
			Year:   strings.TrimSpace(m.Year),
		}
		if c.Role == "" {
			if i == 0 {
				c.Role = "Leader"
			} else {
				c.Role = fmt.Sprintf("Member %d", i)
			}
		}
		cleaned[i] = c
	}
	return cleaned
}
