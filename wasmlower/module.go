package wasmlower

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/wippyai/stackgen/errors"
	"github.com/wippyai/stackgen/wasmlower/internal/binary"
	"go.uber.org/zap"
)

// Binary format framing.
const (
	magic   uint32 = 0x6D736100 // \0asm
	version uint32 = 1

	sectionType     byte = 1
	sectionFunction byte = 3
	sectionExport   byte = 7
	sectionCode     byte = 10

	funcTypeByte   byte = 0x60
	exportKindFunc byte = 0x00
)

// Finish closes the function body and encodes a module that exports it.
// Unless the body ends in a return, the values left on the stack must match
// the result type exactly.
func (f *Function) Finish() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := f.checkEnd(); err != nil {
		f.fail(err)
		return nil, err
	}

	w := binary.NewWriter()
	w.WriteU32LE(magic)
	w.WriteU32LE(version)

	sec := binary.NewWriter()
	sec.WriteU32(1)
	sec.Byte(funcTypeByte)
	sec.WriteU32(uint32(len(f.params)))
	for _, p := range f.params {
		sec.Byte(byte(p))
	}
	if f.void {
		sec.WriteU32(0)
	} else {
		sec.WriteU32(1)
		sec.Byte(byte(f.result))
	}
	w.WriteSection(sectionType, sec)

	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteU32(0)
	w.WriteSection(sectionFunction, sec)

	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteName(f.cfg.Export)
	sec.Byte(exportKindFunc)
	sec.WriteU32(0)
	w.WriteSection(sectionExport, sec)

	body := binary.NewWriter()
	groups := groupLocals(f.locals)
	body.WriteU32(uint32(len(groups)))
	for _, g := range groups {
		body.WriteU32(g.count)
		body.Byte(byte(g.typ))
	}
	body.WriteBytes(f.code.Bytes())
	body.Byte(opEnd)

	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteU32(uint32(body.Len()))
	sec.WriteBytes(body.Bytes())
	w.WriteSection(sectionCode, sec)

	Logger().Debug("lowered function",
		zap.String("export", f.cfg.Export),
		zap.Int("params", len(f.params)),
		zap.Int("locals", len(f.locals)),
		zap.Int("code_size", f.code.Len()),
	)
	return w.Bytes(), nil
}

func (f *Function) checkEnd() error {
	var want []ValType
	if !f.void {
		want = []ValType{f.result}
	}
	got := f.stack
	if f.dead && len(got) == 0 {
		return nil
	}
	if len(got) == len(want) && (len(got) == 0 || got[0] == want[0]) {
		return nil
	}
	return errors.New(errors.PhaseLower, errors.KindInvalidInput).
		Op("end").
		Value(formatStack(got)).
		Detail("function ends with stack %s, want %s", formatStack(got), formatStack(want)).
		Build()
}

type localGroup struct {
	count uint32
	typ   ValType
}

// groupLocals run-length encodes local declarations as the code section expects.
func groupLocals(locals []ValType) []localGroup {
	var groups []localGroup
	for _, t := range locals {
		if n := len(groups); n > 0 && groups[n-1].typ == t {
			groups[n-1].count++
			continue
		}
		groups = append(groups, localGroup{count: 1, typ: t})
	}
	return groups
}

// Run instantiates module in a fresh wazero runtime and calls the named export.
func Run(ctx context.Context, module []byte, export string, args ...uint64) ([]uint64, error) {
	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig())
	defer r.Close(ctx)

	compiled, err := r.CompileModule(ctx, module)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseExecute, errors.KindInvalidInput, err, "compile module")
	}
	mod, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("stackgen"))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseExecute, errors.KindInvalidInput, err, "instantiate module")
	}
	fn := mod.ExportedFunction(export)
	if fn == nil {
		return nil, errors.New(errors.PhaseExecute, errors.KindInvalidInput).
			Op(export).
			Detail("export %q not found", export).
			Build()
	}
	results, err := fn.Call(ctx, args...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseExecute, errors.KindInvalidInput, err, "call "+export)
	}
	Logger().Debug("executed", zap.String("export", export), zap.Int("results", len(results)))
	return results, nil
}

// Call finishes f, runs it in a fresh runtime and decodes the result.
// Void functions return nil.
func (f *Function) Call(ctx context.Context, args ...any) (any, error) {
	mod, err := f.Finish()
	if err != nil {
		return nil, err
	}
	raw := make([]uint64, len(args))
	for i, a := range args {
		if raw[i], err = EncodeArg(a); err != nil {
			return nil, err
		}
	}
	results, err := Run(ctx, mod, f.cfg.Export, raw...)
	if err != nil {
		return nil, err
	}
	if f.void || len(results) == 0 {
		return nil, nil
	}
	return DecodeResult(f.result, results[0]), nil
}
