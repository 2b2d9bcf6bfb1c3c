package internal

import "time"

func defineGlobals(e *env) {
	defineClock(e)
}

// defineClock binds the wall-clock reader, seconds since the Unix
// epoch as a number.
func defineClock(e *env) {
	var clock nativeFn
	clock.arityValue = 0
	clock.callFn = func(exec *exec, arguments []interface{}) interface{} {
		return float64(time.Now().UnixNano()) / 1e9
	}

	e.define("clock", &clock)
}
