package thread

// Func is an erased unit of work: a callable with all of its arguments
// already bound. It is invoked exactly once by the thread that owns it.
type Func func()

// Runner is a function object.
type Runner interface {
	Run()
}

// Bind wraps a function with no arguments.
func Bind(fn func()) Func {
	if fn == nil {
		return nil
	}
	return Func(fn)
}

// Bind1 binds a by value. Pass a pointer to bind by reference.
func Bind1[A any](fn func(A), a A) Func {
	if fn == nil {
		return nil
	}
	return func() { fn(a) }
}

func Bind2[A, B any](fn func(A, B), a A, b B) Func {
	if fn == nil {
		return nil
	}
	return func() { fn(a, b) }
}

func Bind3[A, B, C any](fn func(A, B, C), a A, b B, c C) Func {
	if fn == nil {
		return nil
	}
	return func() { fn(a, b, c) }
}

// Method binds a method expression to its receiver, e.g.
//
//	thread.Method((*Counter).Run, c)
//
// which invokes c.Run().
func Method[R any](m func(R), recv R) Func {
	if m == nil {
		return nil
	}
	return func() { m(recv) }
}

// Method1 invokes recv.m(a).
func Method1[R, A any](m func(R, A), recv R, a A) Func {
	if m == nil {
		return nil
	}
	return func() { m(recv, a) }
}

// Method2 invokes recv.m(a, b).
func Method2[R, A, B any](m func(R, A, B), recv R, a A, b B) Func {
	if m == nil {
		return nil
	}
	return func() { m(recv, a, b) }
}

// Functor returns a Func invoking r.Run.
func Functor(r Runner) Func {
	if r == nil {
		return nil
	}
	return r.Run
}
