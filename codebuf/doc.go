// Package codebuf assembles JVM bytecode from stackgen manipulations.
//
// Code implements stack.Emitter. It encodes each instruction big-endian, interns
// literals in a deduplicating constant Pool and picks ldc, ldc_w or ldc2_w from
// the literal's kind and its pool index. Encoding failures do not panic: the first
// one is kept and reported by Err, and later emissions are ignored.
//
//	code := codebuf.New(codebuf.DefaultConfig())
//	body := codebuf.NewBody(code, nil)
//	if err := body.Add(constant.ForDouble(2.5), member.Return(category.Double)); err != nil {
//		return err
//	}
//	fmt.Println(body.MaxStack()) // 2
//
// Code is not safe for concurrent use.
package codebuf
