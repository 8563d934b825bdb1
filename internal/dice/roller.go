package dice

// Roller provides an interface for rolling dice.
// This allows us to inject different implementations for testing.
type Roller interface {
	// Roll rolls count dice with the given number of sides and returns the
	// individual results in roll order.
	Roll(count, sides int) ([]int, error)
}
