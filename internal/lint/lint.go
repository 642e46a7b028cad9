// Package lint holds text-level checks that run next to the parser.
package lint

import (
	"fmt"
	"regexp"
	"strings"

	"fortio.org/safecast"

	"rsl/internal/diag"
	"rsl/internal/source"
)

var deprecatedRe = regexp.MustCompile(`(?i)\b(record|array)\b`)

const deprecatedMsg = "Определение %s устарело, от такого надо избавляться по возможности.\nRecord → TRecHandler\nArray → TArray"

// Deprecations reports every "record" and "array" word in the file as an
// information diagnostic tagged deprecated. Comments and strings are not
// excluded: the check works on raw text.
func Deprecations(f *source.File, r diag.Reporter) int {
	if f == nil {
		return 0
	}
	n := 0
	for _, loc := range deprecatedRe.FindAllIndex(f.Content, -1) {
		start, errStart := safecast.Conv[uint32](loc[0])
		end, errEnd := safecast.Conv[uint32](loc[1])
		if errStart != nil || errEnd != nil {
			break
		}
		word := strings.ToUpper(string(f.Content[start:end]))
		span := source.Span{File: f.ID, Start: start, End: end}
		diag.ReportInfo(r, diag.LntDeprecated, span, fmt.Sprintf(deprecatedMsg, word)).
			WithTag(diag.TagDeprecated).
			WithNote(span, "deprecated construct").
			Emit()
		n++
	}
	return n
}
