package stack

import "fmt"

// Direction tells whether a Size grows or shrinks the operand stack.
type Direction uint8

const (
	Increase Direction = iota
	Decrease
)

func (d Direction) String() string {
	if d == Decrease {
		return "decrease"
	}
	return "increase"
}

// Size is the effect of one or more instructions on the operand stack, in words.
//
// Impact is the net change. Maximal is the largest cumulative increase reached
// at any point while the instructions run, which is what the enclosing method
// needs to reserve.
type Size struct {
	impact  int
	maximal int
}

// Zero is a Size with no effect. It is the identity for Aggregate.
var Zero = Size{}

// Increasing returns a Size that pushes n words.
func Increasing(n uint) Size {
	return Size{impact: int(n), maximal: int(n)}
}

// Decreasing returns a Size that pops n words.
func Decreasing(n uint) Size {
	return Size{impact: -int(n)}
}

// Magnitude is the absolute number of words gained or lost.
func (s Size) Magnitude() int {
	if s.impact < 0 {
		return -s.impact
	}
	return s.impact
}

// Direction reports Decrease for a net loss of words and Increase otherwise.
func (s Size) Direction() Direction {
	if s.impact < 0 {
		return Decrease
	}
	return Increase
}

// Impact is the signed net change in words.
func (s Size) Impact() int {
	return s.impact
}

// Maximal is the peak cumulative increase.
func (s Size) Maximal() int {
	return s.maximal
}

// Aggregate returns the effect of s followed by next.
func (s Size) Aggregate(next Size) Size {
	return Size{
		impact:  s.impact + next.impact,
		maximal: max(s.maximal, s.impact+next.maximal),
	}
}

func (s Size) String() string {
	return fmt.Sprintf("%+d (max %d)", s.impact, s.maximal)
}

// StackSize is the number of words a single value occupies.
type StackSize uint8

const (
	ZeroSlots  StackSize = 0 // void
	SingleSlot StackSize = 1 // int, float, reference
	DoubleSlot StackSize = 2 // long, double
)

// Words returns the slot count.
func (s StackSize) Words() int {
	return int(s)
}

// ToIncreasingSize returns the Size of pushing one value of this width.
func (s StackSize) ToIncreasingSize() Size {
	return Increasing(uint(s))
}

// ToDecreasingSize returns the Size of popping one value of this width.
func (s StackSize) ToDecreasingSize() Size {
	return Decreasing(uint(s))
}

// Maximum returns the wider of s and other.
func (s StackSize) Maximum(other StackSize) StackSize {
	return max(s, other)
}
