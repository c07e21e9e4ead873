package report

import (
	"strings"
	"time"
	"unicode"
)

// FileName returns the download name of an evaluation report:
// Evaluacion_<project>_<yyyy-mm-dd>.pdf, with every character of the project name
// outside [A-Za-z0-9] replaced by '_'.
func FileName(projectName string, date time.Time) string {
	var b strings.Builder
	for _, r := range projectName {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return "Evaluacion_" + b.String() + "_" + date.Format("2006-01-02") + ".pdf"
}
