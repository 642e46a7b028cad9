package diag

import "rsl/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Relocated returns a copy pointing at primary. The original location is kept
// as a note so renderers can still show where the problem really is.
func (d Diagnostic) Relocated(code Code, primary source.Span, note string) Diagnostic {
	out := Diagnostic{
		Severity: d.Severity,
		Code:     code,
		Message:  d.Message,
		Primary:  primary,
		Tags:     d.Tags,
	}
	out.Notes = append(out.Notes, Note{Span: d.Primary, Msg: note})
	return out
}
