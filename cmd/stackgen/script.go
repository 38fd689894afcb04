package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/stackgen/category"
	"github.com/wippyai/stackgen/constant"
	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/member"
	"github.com/wippyai/stackgen/opcode"
	"github.com/wippyai/stackgen/stack"
)

// script is a parsed manipulation script.
type script struct {
	manipulations []stack.Manipulation
	lines         []int // source line of each manipulation
	result        category.Category
}

func newScript() *script {
	return &script{result: category.Void}
}

// parseScript reads one manipulation per line. Blank lines and lines
// starting with # are skipped.
func parseScript(r io.Reader) (*script, error) {
	s := newScript()
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		if err := s.add(n, sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "read script")
	}
	return s, nil
}

// add parses a single source line and appends its manipulation.
func (s *script) add(n int, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	m, ret, err := parseLine(line)
	if err != nil {
		return errors.ParseFailed(n, err)
	}
	if ret != nil {
		s.result = *ret
	}
	s.manipulations = append(s.manipulations, m)
	s.lines = append(s.lines, n)
	return nil
}

func (s *script) len() int {
	return len(s.manipulations)
}

// parseLine returns the manipulation for line and, for return statements,
// the returned category.
func parseLine(line string) (stack.Manipulation, *category.Category, error) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	if verb != "const" || !strings.HasPrefix(rest, "string") {
		if i := strings.IndexByte(rest, '#'); i >= 0 {
			rest = strings.TrimSpace(rest[:i])
		}
	}
	args := strings.Fields(rest)

	switch verb {
	case "const":
		m, err := parseConst(rest)
		return m, nil, err
	case "return":
		if len(args) != 1 {
			return nil, nil, usage("return <type>")
		}
		c, err := parseCategory(args[0])
		if err != nil {
			return nil, nil, err
		}
		return member.Return(c), &c, nil
	case "load", "store":
		if len(args) != 2 {
			return nil, nil, usage(verb + " <type> <slot>")
		}
		c, err := parseCategory(args[0])
		if err != nil {
			return nil, nil, err
		}
		slot, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, nil, err
		}
		if verb == "load" {
			return member.Load(c, slot), nil, nil
		}
		return member.Store(c, slot), nil, nil
	case "pop", "dup":
		if len(args) != 1 || (args[0] != "1" && args[0] != "2") {
			return nil, nil, usage(verb + " <1|2>")
		}
		size := stack.SingleSlot
		if args[0] == "2" {
			size = stack.DoubleSlot
		}
		if verb == "pop" {
			return stack.Remove(size), nil, nil
		}
		return stack.Duplicate(size), nil, nil
	case "op":
		if len(args) != 1 {
			return nil, nil, usage("op <mnemonic>")
		}
		op, ok := opcode.Lookup(args[0])
		if !ok {
			return nil, nil, errors.InvalidOperand(errors.PhaseParse, "op", args[0])
		}
		return stack.Instruction(op), nil, nil
	default:
		return nil, nil, errors.InvalidOperand(errors.PhaseParse, "verb", verb)
	}
}

func parseConst(rest string) (stack.Manipulation, error) {
	kind, value, _ := strings.Cut(rest, " ")
	value = strings.TrimSpace(value)
	switch kind {
	case "null":
		return constant.Null, nil
	case "string":
		if strings.HasPrefix(value, `"`) {
			unquoted, err := strconv.Unquote(value)
			if err != nil {
				return nil, err
			}
			value = unquoted
		}
		return constant.ForString(value), nil
	}
	if value == "" {
		return nil, usage("const " + kind + " <value>")
	}
	switch kind {
	case "int":
		v, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return nil, err
		}
		return constant.ForInt(int32(v)), nil
	case "bool":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		return constant.ForBool(v), nil
	case "long":
		v, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return nil, err
		}
		return constant.ForLong(v), nil
	case "float":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, err
		}
		return constant.ForFloat(float32(v)), nil
	case "double":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		return constant.ForDouble(v), nil
	default:
		return nil, errors.InvalidOperand(errors.PhaseParse, "const", kind)
	}
}

// parseCategory accepts category names, Java keywords, descriptors and WIT
// primitive names.
func parseCategory(s string) (category.Category, error) {
	c, err := category.Parse(s)
	if err == nil {
		return c, nil
	}
	if c, ok := category.ParseWIT(s); ok {
		return c, nil
	}
	return 0, err
}

func usage(form string) error {
	return errors.InvalidInput(errors.PhaseParse, "usage: "+form)
}
