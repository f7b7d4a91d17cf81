package interfaces

// Condition is a side-effect-free predicate over live page state.
// Evaluate may be called any number of times.
type Condition interface {
	Evaluate(s Session) (bool, error)
	String() string
}
