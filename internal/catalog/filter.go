package catalog

import (
	"regexp"

	"github.com/koustreak/dremcat/internal/errs"
)

// Filter decides which database candidates a discovery run descends into.
//
// Semantics follow the ingestion framework's filter patterns: a name is
// excluded when any exclude pattern matches it, or when include patterns
// exist and none of them matches. An empty filter passes everything.
//
// System namespaces are not this filter's concern — the session excludes
// those unconditionally before the filter ever sees a candidate.
type Filter struct {
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

// NewFilter compiles include and exclude patterns. A nil or empty slice on
// either side means "no constraint on that side".
func NewFilter(includes, excludes []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range includes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindConfig, "invalid include pattern "+p, err)
		}
		f.includes = append(f.includes, re)
	}
	for _, p := range excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindConfig, "invalid exclude pattern "+p, err)
		}
		f.excludes = append(f.excludes, re)
	}
	return f, nil
}

// Excluded reports whether name should be filtered out of the run.
func (f *Filter) Excluded(name string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.excludes {
		if re.MatchString(name) {
			return true
		}
	}
	if len(f.includes) == 0 {
		return false
	}
	for _, re := range f.includes {
		if re.MatchString(name) {
			return false
		}
	}
	return true
}
