package diag

import (
	"fmt"
)

// Code identifies one finding in the closed catalog. The numeric value
// groups codes by family; ID() renders the stable user-facing form
// (e.g. GL08, PR01) that noqa comments and config select/ignore lists match
// against.
type Code uint16

const (
	UnknownCode Code = 0
	// CheckFailure reports a check that panicked; the batch continues.
	CheckFailure Code = 1

	// Global structure
	GLStartOnNewLine      Code = 1001
	GLBlankBeforeClose    Code = 1002
	GLDoubleBlankLine     Code = 1003
	GLTabIndentation      Code = 1004
	GLUnexpectedSection   Code = 1006
	GLSectionOrder        Code = 1007
	GLMissingDocstring    Code = 1008
	GLDeprecatedPlacement Code = 1009
	GLDirectiveColons     Code = 1010
	GLDeprecatedDuplicate Code = 1011

	// Summary
	SSMissing        Code = 1101
	SSCapitalization Code = 1102
	SSPeriod         Code = 1103
	SSIndentation    Code = 1104
	SSThirdPerson    Code = 1105
	SSSingleLine     Code = 1106

	// Extended summary / examples
	ESMissing Code = 1201
	EXMissing Code = 1301

	// Parameters
	PRUndocumented  Code = 1401
	PRUndeclared    Code = 1402
	PROrder         Code = 1403
	PRMissingType   Code = 1404
	PRTypePeriod    Code = 1405
	PRWrongType     Code = 1406
	PRDescEmpty     Code = 1407
	PRDescUppercase Code = 1408
	PRDescPeriod    Code = 1409
	PRColonSpacing  Code = 1410

	PRDescBlankPrefix  Code = 1501
	PRDescBlankSuffix  Code = 1502
	PROptionalRepeated Code = 1503

	// Returns / Yields
	RTMissing        Code = 1601
	RTNamedSingle    Code = 1602
	RTDescEmpty      Code = 1603
	RTDescUppercase  Code = 1604
	RTDescPeriod     Code = 1605
	YDMissing        Code = 1701

	// Parser recovery
	ERMissingBlankBeforeSection Code = 1801
	ERUnderlineLength           Code = 1802

	// See Also
	SAUnexpectedSeparator Code = 1901
)

// ID returns the stable string form of the code.
func (c Code) ID() string {
	switch ic := int(c); {
	case c == CheckFailure:
		return "CHK00"
	case ic >= 1000 && ic < 1100:
		return fmt.Sprintf("GL%02d", ic-1000)
	case ic >= 1100 && ic < 1200:
		return fmt.Sprintf("SS%02d", ic-1100)
	case ic >= 1200 && ic < 1300:
		return fmt.Sprintf("ES%02d", ic-1200)
	case ic >= 1300 && ic < 1400:
		return fmt.Sprintf("EX%02d", ic-1300)
	case ic >= 1400 && ic < 1500:
		return fmt.Sprintf("PR%02d", ic-1400)
	case ic >= 1500 && ic < 1600:
		return fmt.Sprintf("PRE%02d", ic-1500)
	case ic >= 1600 && ic < 1700:
		return fmt.Sprintf("RT%02d", ic-1600)
	case ic >= 1700 && ic < 1800:
		return fmt.Sprintf("YD%02d", ic-1700)
	case ic >= 1800 && ic < 1900:
		return fmt.Sprintf("ER%02d", ic-1800)
	case ic >= 1900 && ic < 2000:
		return fmt.Sprintf("SA%02d", ic-1900)
	}
	return "XX00"
}

// Severity returns the rendering severity for the code.
func (c Code) Severity() Severity {
	switch c {
	case SSMissing, ESMissing, EXMissing, RTMissing, YDMissing:
		return SevHint
	case PRUndocumented, PRUndeclared, PROrder, PRMissingType, RTNamedSingle:
		return SevWarning
	case GLMissingDocstring, GLUnexpectedSection, PRTypePeriod, PRWrongType,
		ERMissingBlankBeforeSection, ERUnderlineLength, SAUnexpectedSeparator,
		CheckFailure:
		return SevError
	}
	return SevInfo
}

// Title returns a short generic description, used by catalog listings.
func (c Code) Title() string {
	desc, ok := codeTitles[c]
	if !ok {
		return "unknown diagnostic"
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

var codeTitles = map[Code]string{
	CheckFailure:                "internal check failure",
	GLStartOnNewLine:            "docstring should start on a new line",
	GLBlankBeforeClose:          "docstring should end one line before the closing quotes",
	GLDoubleBlankLine:           "docstring should not contain double line breaks",
	GLTabIndentation:            "docstring line should not start with tabs",
	GLUnexpectedSection:         "docstring contains unexpected section",
	GLSectionOrder:              "sections are in the wrong order",
	GLMissingDocstring:          "missing docstring",
	GLDeprecatedPlacement:       "deprecation warning should precede extended summary",
	GLDirectiveColons:           "reST directives must be followed by two colons",
	GLDeprecatedDuplicate:       "summary should only contain a single deprecation warning",
	SSMissing:                   "no summary found",
	SSCapitalization:            "summary does not start with a capital letter",
	SSPeriod:                    "summary does not end with a period",
	SSIndentation:               "summary contains heading whitespaces",
	SSThirdPerson:               "summary should start with an infinitive verb",
	SSSingleLine:                "summary should fit in a single line",
	ESMissing:                   "no extended summary found",
	EXMissing:                   "no examples section found",
	PRUndocumented:              "parameter should be documented",
	PRUndeclared:                "documented parameter does not exist in the declaration",
	PROrder:                     "parameter is in the wrong order",
	PRMissingType:               "parameter should have a type",
	PRTypePeriod:                "parameter type should not finish with a period",
	PRWrongType:                 "parameter uses a discouraged type spelling",
	PRDescEmpty:                 "parameter has no description",
	PRDescUppercase:             "parameter description should start with an uppercase letter",
	PRDescPeriod:                "parameter description should end with a period",
	PRColonSpacing:              "parameter requires a space between name and type",
	PRDescBlankPrefix:           "parameter description has empty prefix lines",
	PRDescBlankSuffix:           "parameter description has empty suffix lines",
	PROptionalRepeated:          "parameter specifies optional multiple times",
	RTMissing:                   "no return section found",
	RTNamedSingle:               "single return should only contain the type",
	RTDescEmpty:                 "return has no description",
	RTDescUppercase:             "return description should start with an uppercase letter",
	RTDescPeriod:                "return description should end with a period",
	YDMissing:                   "no yields section found",
	ERMissingBlankBeforeSection: "missing blank line before section",
	ERUnderlineLength:           "section underline does not match header length",
	SAUnexpectedSeparator:       "unexpected comma or period after function list",
}

// Catalog returns every code in the catalog in rendering order.
func Catalog() []Code {
	return []Code{
		GLStartOnNewLine, GLBlankBeforeClose, GLDoubleBlankLine,
		GLTabIndentation, GLUnexpectedSection, GLSectionOrder,
		GLMissingDocstring, GLDeprecatedPlacement, GLDirectiveColons,
		GLDeprecatedDuplicate,
		SSMissing, SSCapitalization, SSPeriod, SSIndentation,
		SSThirdPerson, SSSingleLine,
		ESMissing, EXMissing,
		PRUndocumented, PRUndeclared, PROrder, PRMissingType, PRTypePeriod,
		PRWrongType, PRDescEmpty, PRDescUppercase, PRDescPeriod,
		PRColonSpacing, PRDescBlankPrefix, PRDescBlankSuffix,
		PROptionalRepeated,
		RTMissing, RTNamedSingle, RTDescEmpty, RTDescUppercase, RTDescPeriod,
		YDMissing,
		ERMissingBlankBeforeSection, ERUnderlineLength,
		SAUnexpectedSeparator,
		CheckFailure,
	}
}
