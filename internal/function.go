package internal

import "fmt"

type callable interface {
	arity() int
	call(exec *exec, arguments []interface{}) interface{}
}

// returnSignal carries a return value up to the call boundary. It
// shares the panic channel with runtime errors but is a distinct type,
// only function.call may intercept it.
type returnSignal struct {
	value interface{}
}

type function struct {
	declaration *fnStmt
	closure     *env
}

func (f *function) arity() int {
	return len(f.declaration.params)
}

func (f *function) call(exec *exec, arguments []interface{}) (result interface{}) {
	// The new frame encloses the environment captured at declaration
	// time, not the caller's frame. That is what makes closures work.
	env := newEnv(f.closure)
	for i := range f.declaration.params {
		env.define(f.declaration.params[i].lexeme, arguments[i])
	}

	defer func() {
		if r := recover(); r != nil {
			if ret, isReturn := r.(returnSignal); isReturn {
				result = ret.value
			} else {
				panic(r)
			}
		}
	}()

	exec.executeBlock(f.declaration.body, env)

	return nil
}

func (f *function) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.lexeme)
}

type nativeFn struct {
	arityValue int
	callFn     func(exec *exec, arguments []interface{}) interface{}
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (n *nativeFn) call(exec *exec, arguments []interface{}) interface{} {
	return n.callFn(exec, arguments)
}

func (n *nativeFn) String() string {
	return "<native fn>"
}
