package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rsl/internal/diag"
	"rsl/internal/source"
)

type palette struct {
	sev   map[diag.Severity]*color.Color
	code  *color.Color
	path  *color.Color
	caret *color.Color
	gut   *color.Color
	note  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgBlue, color.Bold),
			diag.SevHint:    color.New(color.FgCyan),
		},
		code:  color.New(color.Bold),
		path:  color.New(color.FgWhite, color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		gut:   color.New(color.FgBlue),
		note:  color.New(color.FgCyan, color.Bold),
	}
	all := []*color.Color{p.code, p.path, p.caret, p.gut, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	// глобальный color.NoColor смотрит на stdout, а мы пишем куда угодно
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		sevColor := p.sev[d.Severity]
		if sevColor == nil {
			sevColor = p.code
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col),
			sevColor.Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		if f != nil {
			writeSnippet(w, p, f, d.Primary, opts.Context)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s: %s\n",
				p.note.Sprint("note:"),
				p.path.Sprintf("%s:%d:%d", formatPath(nf, opts.PathMode, opts.BaseDir), ns.Line, ns.Col),
				n.Msg,
			)
		}
	}
}

// writeSnippet печатает строку span (и context соседних) с подчёркиванием.
func writeSnippet(w io.Writer, p palette, f *source.File, span source.Span, context int) {
	start := f.LineCol(span.Start)
	end := f.LineCol(span.End)
	if start.Line == 0 {
		return
	}
	ctx := uint32(max(context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	// строк на одну больше, чем переводов строки
	if n := uint32(len(f.LineIdx)) + 1; last > n {
		last = max(n, start.Line)
	}
	width := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := strings.TrimRight(f.GetLine(ln), "\r")
		if ln != start.Line && text == "" {
			continue
		}
		fmt.Fprintf(w, " %s %s\n", p.gut.Sprintf("%*d |", width, ln), expandTabs(text))
		if ln != start.Line {
			continue
		}
		// колонки байтовые, ширина на экране считается по рунам
		line := f.GetLine(ln)
		from := min(int(start.Col-1), len(line))
		to := len(line)
		if end.Line == start.Line {
			to = min(int(end.Col-1), len(line))
		}
		pad := runewidth.StringWidth(expandTabs(line[:from]))
		n := max(runewidth.StringWidth(expandTabs(line[from:to])), 1)
		marker := "^" + strings.Repeat("~", n-1)
		fmt.Fprintf(w, " %s %s%s\n", p.gut.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
