package fast

// Radius of the sampling circle. The offset table below is only valid for 3.
const Radius = 3

// RingSize is the number of samples on the radius-3 Bresenham circle.
const RingSize = 16

// Offset is a position relative to a center pixel.
type Offset struct {
	DX, DY int
}

// ring starts at the top and runs clockwise (y grows downward).
// Run detection depends on this order.
var ring = [RingSize]Offset{
	{0, -3}, {1, -3}, {2, -2}, {3, -1},
	{3, 0}, {3, 1}, {2, 2}, {1, 3},
	{0, 3}, {-1, 3}, {-2, 2}, {-3, 1},
	{-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
}

// Ring returns a copy of the sample offsets in traversal order.
func Ring() [RingSize]Offset {
	return ring
}
