package grid

// Inclusion selects which endpoints of a start→end sequence are reported.
type Inclusion uint8

const (
	WithStartAndEnd Inclusion = iota
	WithStart
	WithEnd
	WithoutStartAndEnd
)

// IncludesStart reports whether the start coordinate is part of the output.
func (i Inclusion) IncludesStart() bool {
	return i == WithStartAndEnd || i == WithStart
}

// IncludesEnd reports whether the end coordinate is part of the output.
func (i Inclusion) IncludesEnd() bool {
	return i == WithStartAndEnd || i == WithEnd
}

func (i Inclusion) String() string {
	switch i {
	case WithStartAndEnd:
		return "with-start-and-end"
	case WithStart:
		return "with-start"
	case WithEnd:
		return "with-end"
	case WithoutStartAndEnd:
		return "without-start-and-end"
	default:
		return "unknown"
	}
}
