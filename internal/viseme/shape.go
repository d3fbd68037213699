package viseme

// Shape is one of the nine canonical animation mouth shapes
// (Preston Blair convention). X is the rest/closed shape.
type Shape uint8

const (
	ShapeX Shape = iota // silence / rest
	ShapeA              // open vowels
	ShapeB              // bilabial closure
	ShapeC              // rounded / postalveolar
	ShapeD              // alveolar and tongue-teeth
	ShapeE              // mid and neutral vowels
	ShapeF              // labiodental fricatives
	ShapeG              // velar and back
	ShapeH              // high front / wide spread
	shapeCount
)

var shapeNames = [shapeCount]string{"X", "A", "B", "C", "D", "E", "F", "G", "H"}

// String returns the single-character symbol used in exported cues.
func (s Shape) String() string {
	if s >= shapeCount {
		return "?"
	}
	return shapeNames[s]
}

// ShapeSet is a named, ordered subset of shapes the animation is allowed
// to emit. Immutable after construction.
type ShapeSet struct {
	name    string
	ordered []Shape
	members [shapeCount]bool
}

// NewShapeSet builds a named set from the given shapes. Duplicates are
// collapsed, first occurrence keeps its position.
func NewShapeSet(name string, shapes ...Shape) ShapeSet {
	set := ShapeSet{name: name}
	for _, s := range shapes {
		if s >= shapeCount || set.members[s] {
			continue
		}
		set.members[s] = true
		set.ordered = append(set.ordered, s)
	}
	return set
}

// Name returns the set's name.
func (ss ShapeSet) Name() string {
	return ss.name
}

// Contains reports whether the shape is a member of the set.
func (ss ShapeSet) Contains(s Shape) bool {
	return s < shapeCount && ss.members[s]
}

// Shapes returns the members in insertion order.
func (ss ShapeSet) Shapes() []Shape {
	out := make([]Shape, len(ss.ordered))
	copy(out, ss.ordered)
	return out
}

// Len returns the number of members.
func (ss ShapeSet) Len() int {
	return len(ss.ordered)
}

// BasicShapes returns the standard nine-shape set, rest shape first.
func BasicShapes() ShapeSet {
	return NewShapeSet("basic",
		ShapeX, ShapeA, ShapeB, ShapeC, ShapeD, ShapeE, ShapeF, ShapeG, ShapeH)
}
