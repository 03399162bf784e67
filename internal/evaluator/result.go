package evaluator

import "github.com/AAUP4-Projekt/wrench/internal/values"

// signal distinguishes ordinary statement completion from a `return` that
// must propagate up through every enclosing block/if/while/for to the
// function call awaiting it (spec §4.3's Compound/If/While/For "propagate
// its return" rules).
type signal int

const (
	signalNone signal = iota
	signalReturn
)

// outcome is what executing one statement yields.
type outcome struct {
	signal signal
	value  values.Value
}

var none = outcome{}

func returning(v values.Value) outcome {
	return outcome{signal: signalReturn, value: v}
}

func (o outcome) isReturn() bool { return o.signal == signalReturn }
