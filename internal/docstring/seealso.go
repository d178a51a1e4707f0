package docstring

import (
	"regexp"
	"strings"

	"numdoc/internal/diag"
	"numdoc/internal/source"
)

// See Also grammar. An entry line is one or more comma-separated reference
// names, each optionally wrapped in a :role:`name` marker, followed by an
// optional ": description" tail. Deeper-indented lines without their own
// description continue the previous entry's description.

const (
	saRole         = `:(?P<role>(py:)?\w+):`
	saBacktickName = "`(?P<name>(?:~\\w+\\.)?[a-zA-Z0-9_\\.-]+)`"
	saPlainName    = `(?P<name2>[a-zA-Z0-9_\.-]+)`
)

var saFuncName = "(" + saRole + saBacktickName + "|" + saPlainName + ")"

var saFuncNameExt = strings.ReplaceAll(
	strings.ReplaceAll(saFuncName, "role", "rolenext"),
	"name", "namenext",
)

var (
	saLinePattern = regexp.MustCompile(
		`^\s*(?P<allfuncs>` + saFuncName +
			`(?P<morefuncs>([,]\s+` + saFuncNameExt + `)*))` +
			`(?P<trailing>[,.])?` +
			`(?P<description>\s*:(\s+(?P<desc>\S+.*))?)?\s*$`,
	)
	saFuncPattern = regexp.MustCompile(`^\s*` + saFuncName + `\s*`)
)

// parseSeeAlso recovers cross-reference entries from a See Also section
// body. Lines that match neither the entry grammar nor the continuation
// rule are dropped without a diagnostic.
func parseSeeAlso(body []Line, indent int) ([]SeeAlsoEntry, []diag.Diagnostic) {
	var entries []SeeAlsoEntry
	var diags []diag.Diagnostic

	for _, line := range body {
		text := deindent(line.Text, indent)
		if trimSpace(text) == "" {
			continue
		}

		m := saLinePattern.FindStringSubmatchIndex(text)
		desc := saGroup(text, saLinePattern, m, "desc")
		if m != nil && desc != "" {
			if t := m[2*saLinePattern.SubexpIndex("trailing")]; t >= 0 {
				pos := source.Position{Line: line.Pos.Line, Col: indent + t + 1}
				diags = append(diags, diag.New(
					diag.SAUnexpectedSeparator,
					source.Between(pos, pos.Move(0, 1)),
					"Unexpected comma or period before colon.",
				))
			}
		}

		switch {
		case desc == "" && strings.HasPrefix(text, " "):
			if len(entries) > 0 {
				last := &entries[len(entries)-1]
				last.Description = append(last.Description, trimSpace(text))
			}
		case m != nil:
			entry := SeeAlsoEntry{Refs: parseRefNames(saGroup(text, saLinePattern, m, "allfuncs"))}
			if desc != "" {
				entry.Description = []string{desc}
			}
			entries = append(entries, entry)
		}
	}
	return entries, diags
}

// parseRefNames splits a matched name list into individual references.
func parseRefNames(text string) []SeeAlsoRef {
	var refs []SeeAlsoRef
	for trimSpace(text) != "" {
		m := saFuncPattern.FindStringSubmatchIndex(text)
		if m == nil {
			break
		}
		role := saGroup(text, saFuncPattern, m, "role")
		name := saGroup(text, saFuncPattern, m, "name")
		if role == "" {
			name = saGroup(text, saFuncPattern, m, "name2")
		}
		refs = append(refs, SeeAlsoRef{Name: name, Role: role})
		text = strings.TrimSpace(text[m[1]:])
		if strings.HasPrefix(text, ",") {
			text = strings.TrimSpace(text[1:])
		}
	}
	return refs
}

func saGroup(s string, re *regexp.Regexp, m []int, group string) string {
	if m == nil {
		return ""
	}
	i := re.SubexpIndex(group)
	if i < 0 || m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}
