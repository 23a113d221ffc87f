package component

// Countered is a transient marker added to an attacker whose hit was parried.
// The boss system consumes it to cancel the swing.
type Countered struct {
	Hitbox string
}

var CounteredComponent = NewComponent[Countered]()

// Parried is a transient marker added to a defender that parried a hit.
type Parried struct {
	SourceEntity uint64
}

var ParriedComponent = NewComponent[Parried]()
