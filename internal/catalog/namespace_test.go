package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDatabasePrefix(t *testing.T) {
	tests := []struct {
		name     string
		database string
		in       string
		want     string
	}{
		{"strips selected database prefix", "sales", "sales.public", "public"},
		{"strips only the first prefix level", "sales", "sales.reporting.monthly", "reporting.monthly"},
		{"no database selected is identity", "", "sales.public", "sales.public"},
		{"name without prefix unchanged", "sales", "hr.public", "hr.public"},
		{"name equal to database treated as already clean", "sales", "sales", "sales"},
		{"empty name unchanged", "sales", "", ""},
		{"prefix match is exact, not substring", "sales", "salesforce.leads", "salesforce.leads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Translator{}
			tr.SetDatabase(tt.database)
			assert.Equal(t, tt.want, tr.StripDatabasePrefix(tt.in))
		})
	}
}

func TestAddDatabasePrefix(t *testing.T) {
	tests := []struct {
		name     string
		database string
		in       string
		want     string
	}{
		{"qualifies catalog name", "sales", "public", "sales.public"},
		{"no database selected is identity", "", "public", "public"},
		{"blank name resolves to database root", "sales", "", "sales"},
		{"whitespace-only name resolves to database root", "sales", "   ", "sales"},
		{"nested catalog name keeps its own dots", "sales", "reporting.monthly", "sales.reporting.monthly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Translator{}
			tr.SetDatabase(tt.database)
			assert.Equal(t, tt.want, tr.AddDatabasePrefix(tt.in))
		})
	}
}

func TestTranslator_RoundTrip(t *testing.T) {
	// strip(add(s)) == s for any non-empty catalog name.
	names := []string{"public", "reporting", "reporting.monthly", "a"}
	databases := []string{"sales", "hr", "d"}

	for _, db := range databases {
		tr := &Translator{}
		tr.SetDatabase(db)
		for _, s := range names {
			assert.Equal(t, s, tr.StripDatabasePrefix(tr.AddDatabasePrefix(s)),
				"round trip of %q under %q", s, db)
		}
	}
}

func TestTranslator_AddAfterStripIsStable(t *testing.T) {
	// add(strip(y)) == y for a correctly prefixed y.
	tr := &Translator{}
	tr.SetDatabase("sales")

	for _, y := range []string{"sales.public", "sales.reporting.monthly"} {
		assert.Equal(t, y, tr.AddDatabasePrefix(tr.StripDatabasePrefix(y)))
	}
}

func TestTranslator_StripIdempotent(t *testing.T) {
	tr := &Translator{}
	tr.SetDatabase("sales")

	for _, s := range []string{"sales.public", "public", "sales", "", "hr.other"} {
		once := tr.StripDatabasePrefix(s)
		assert.Equal(t, once, tr.StripDatabasePrefix(once), "idempotence for %q", s)
	}
}

func TestTranslator_RootCase(t *testing.T) {
	tr := &Translator{}
	tr.SetDatabase("sales")

	assert.Equal(t, "sales", tr.AddDatabasePrefix(""))
}
