package diag

import (
	"testing"
)

func TestCode_ID(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{GLStartOnNewLine, "GL01"},
		{GLMissingDocstring, "GL08"},
		{GLDeprecatedDuplicate, "GL11"},
		{SSMissing, "SS01"},
		{ESMissing, "ES01"},
		{EXMissing, "EX01"},
		{PRUndocumented, "PR01"},
		{PRColonSpacing, "PR10"},
		{PRDescBlankPrefix, "PRE01"},
		{PROptionalRepeated, "PRE03"},
		{RTMissing, "RT01"},
		{YDMissing, "YD01"},
		{ERMissingBlankBeforeSection, "ER01"},
		{ERUnderlineLength, "ER02"},
		{SAUnexpectedSeparator, "SA01"},
		{CheckFailure, "CHK00"},
		{UnknownCode, "XX00"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := tt.code.ID(); got != tt.id {
				t.Errorf("ID() = %q, want %q", got, tt.id)
			}
		})
	}
}

func TestCatalog_AllTitled(t *testing.T) {
	for _, c := range Catalog() {
		if c.Title() == "unknown diagnostic" {
			t.Errorf("code %s has no title", c.ID())
		}
	}
}

func TestCode_Severity(t *testing.T) {
	if GLMissingDocstring.Severity() != SevError {
		t.Error("GL08 should be an error")
	}
	if PRUndocumented.Severity() != SevWarning {
		t.Error("PR01 should be a warning")
	}
	if SSPeriod.Severity() != SevInfo {
		t.Error("SS03 should be info")
	}
	if EXMissing.Severity() != SevHint {
		t.Error("EX01 should be a hint")
	}
}

func TestBag_Limit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(Diagnostic{Code: SSPeriod})
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBag_MergePreservesOrder(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: SSMissing})
	b := NewBag(1)
	b.Add(Diagnostic{Code: ESMissing})
	a.Merge(b)
	items := a.Items()
	if len(items) != 2 || items[0].Code != SSMissing || items[1].Code != ESMissing {
		t.Errorf("Merge() produced %v", items)
	}
}
