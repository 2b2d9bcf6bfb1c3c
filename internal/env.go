package internal

// env is one frame of the scope chain. A child holds a shared
// reference to its parent, never the other way around, so the chain
// stays acyclic and frames die once unreachable.
type env struct {
	enclosing *env
	values    map[string]interface{}
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]interface{}),
	}
}

func (e *env) get(name *token) (interface{}, bool) {
	if value, ok := e.values[name.lexeme]; ok {
		return value, true
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	return nil, false
}

// define creates or overwrites a binding in this frame, re-declaring
// an existing name in the same scope is legal.
func (e *env) define(name string, value interface{}) {
	e.values[name] = value
}

// assign updates an existing binding somewhere along the chain, it
// never creates one.
func (e *env) assign(name *token, value interface{}) bool {
	if _, ok := e.values[name.lexeme]; ok {
		e.values[name.lexeme] = value
		return true
	}
	if e.enclosing != nil {
		return e.enclosing.assign(name, value)
	}
	return false
}
