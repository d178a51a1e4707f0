// Package check holds the docstring content rules. Every rule is a pure
// function over an immutable (declaration, docstring) pair, registered in a
// fixed execution order so one declaration's diagnostic stream is stable
// across runs.
package check

import (
	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/docstring"
)

// RunFunc inspects one parsed docstring. It is only invoked when the
// declaration has a docstring; the missing-docstring gate lives in the
// validator.
type RunFunc func(*decl.Declaration, *docstring.DocString) []diag.Diagnostic

// Check pairs a diagnostic code with its rule. The code doubles as the
// check's identifier for noqa and select/ignore matching.
type Check struct {
	Code diag.Code
	Run  RunFunc
}

var table = []Check{
	{diag.GLStartOnNewLine, checkStartOnNewLine},
	{diag.GLBlankBeforeClose, checkBlankBeforeClose},
	{diag.GLDoubleBlankLine, checkDoubleBlankLine},
	{diag.GLTabIndentation, checkTabIndentation},
	{diag.GLUnexpectedSection, checkUnexpectedSection},
	{diag.GLSectionOrder, checkSectionOrder},
	{diag.GLDeprecatedPlacement, checkDeprecatedPlacement},
	{diag.GLDirectiveColons, checkDirectiveColons},
	{diag.GLDeprecatedDuplicate, checkDeprecatedDuplicate},
	{diag.SSMissing, checkSummaryMissing},
	{diag.SSCapitalization, checkSummaryCapitalization},
	{diag.SSPeriod, checkSummaryPeriod},
	{diag.SSIndentation, checkSummaryIndentation},
	{diag.SSThirdPerson, checkSummaryThirdPerson},
	{diag.SSSingleLine, checkSummarySingleLine},
	{diag.ESMissing, checkExtendedSummaryMissing},
	{diag.EXMissing, checkExamplesMissing},
	{diag.PRUndocumented, checkParamsDocumented},
	{diag.PRUndeclared, checkParamsDeclared},
	{diag.PROrder, checkParamsOrder},
	{diag.PRMissingType, checkParamType},
	{diag.PRTypePeriod, checkParamTypePeriod},
	{diag.PRWrongType, checkParamTypeSpelling},
	{diag.PRDescEmpty, checkParamDescription},
	{diag.PRDescUppercase, checkParamDescUppercase},
	{diag.PRDescPeriod, checkParamDescPeriod},
	{diag.PRColonSpacing, checkParamColonSpacing},
	{diag.PRDescBlankPrefix, checkParamDescBlankPrefix},
	{diag.PRDescBlankSuffix, checkParamDescBlankSuffix},
	{diag.PROptionalRepeated, checkParamOptionalRepeated},
	{diag.RTMissing, checkReturnsMissing},
	{diag.RTNamedSingle, checkReturnsNamedSingle},
	{diag.RTDescEmpty, checkReturnDescription},
	{diag.RTDescUppercase, checkReturnDescUppercase},
	{diag.RTDescPeriod, checkReturnDescPeriod},
	{diag.YDMissing, checkYieldsMissing},
}

// Registry returns the ordered check list. The returned slice is a fresh
// copy; callers may filter it without affecting other runs.
func Registry() []Check {
	out := make([]Check, len(table))
	copy(out, table)
	return out
}
