package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wippyai/stackgen/category"
	"github.com/wippyai/stackgen/codebuf"
	"github.com/wippyai/stackgen/stack"
	"github.com/wippyai/stackgen/wasmlower"
)

// report is the outcome of assembling a script.
type report struct {
	err     error // assembly error, reported with its source line
	wasmErr error
	wasm    any
	pool    *codebuf.Pool
	lines   []codebuf.Line
	size    stack.Size
	depth   int // words left by the emitted instructions
	result  category.Category
	lowered bool
}

type options struct {
	wide bool
	wasm bool
}

// assemble encodes the script to bytecode and, when requested, lowers it to
// WebAssembly and runs it.
func assemble(ctx context.Context, s *script, opts options) *report {
	code := codebuf.New(codebuf.DefaultConfig().WithPreferWide(opts.wide))
	body := codebuf.NewBody(code, nil)
	r := &report{pool: code.Pool(), result: s.result}
	for i, m := range s.manipulations {
		if err := body.Add(m); err != nil {
			r.err = fmt.Errorf("line %d: %w", s.lines[i], err)
			break
		}
	}
	r.size = body.Size()
	r.depth = body.Depth()
	lines, err := code.Listing()
	if err != nil && r.err == nil {
		r.err = err
	}
	r.lines = lines

	if opts.wasm && r.err == nil {
		r.lowered = true
		fn := wasmlower.New(wasmlower.DefaultConfig().WithResult(s.result))
		if err := fn.Lower(s.manipulations...); err != nil {
			r.wasmErr = err
			return r
		}
		r.wasm, r.wasmErr = fn.Call(ctx)
	}
	return r
}

type styles struct {
	title   lipgloss.Style
	offset  lipgloss.Style
	op      lipgloss.Style
	comment lipgloss.Style
	value   lipgloss.Style
	err     lipgloss.Style
	help    lipgloss.Style
}

func plainStyles() styles {
	s := lipgloss.NewStyle()
	return styles{s, s, s, s, s, s, s}
}

func colorStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		offset:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		op:      lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		comment: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func (r *report) render(st styles) string {
	var b strings.Builder

	b.WriteString(st.title.Render("code"))
	b.WriteString("\n")
	for _, l := range r.lines {
		b.WriteString(st.offset.Render(fmt.Sprintf("%04d:", l.Offset)))
		b.WriteString(" ")
		mnemonic := l.Op.String()
		if l.Wide {
			mnemonic = "wide " + mnemonic
		}
		b.WriteString(st.op.Render(mnemonic))
		if arg := l.Arg(); arg != "" {
			b.WriteString(" " + arg)
		}
		if l.Comment != "" {
			b.WriteString(" ")
			b.WriteString(st.comment.Render("// " + l.Comment))
		}
		b.WriteString("\n")
	}

	if r.pool.Count() > 1 {
		b.WriteString("\n")
		b.WriteString(st.title.Render("constant pool"))
		b.WriteString("\n")
		for i := 1; i < r.pool.Count(); i++ {
			if _, ok := r.pool.Entry(uint16(i)); !ok {
				continue
			}
			fmt.Fprintf(&b, "#%d = %s\n", i, st.comment.Render(r.pool.Describe(uint16(i))))
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "max stack: %s\n", st.value.Render(fmt.Sprint(r.size.Maximal())))
	fmt.Fprintf(&b, "net effect: %s\n", st.value.Render(fmt.Sprintf("%+d", r.depth)))

	if r.err != nil {
		b.WriteString(st.err.Render("error: " + r.err.Error()))
		b.WriteString("\n")
	}
	if r.lowered {
		switch {
		case r.wasmErr != nil:
			b.WriteString(st.err.Render("wasm: " + r.wasmErr.Error()))
		case r.result == category.Void:
			b.WriteString("wasm: " + st.value.Render("ok"))
		default:
			b.WriteString("wasm: " + st.value.Render(fmt.Sprintf("%v (%s)", r.wasm, r.result)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
