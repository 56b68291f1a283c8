// Package point defines the common (time, price) currency passed between
// the pen and segment layers.
package point

import "fmt"

// Point is a (time, price) pair — a pen or segment endpoint.
type Point struct {
	Time  int64
	Price float64
}

// New constructs a Point.
func New(time int64, price float64) Point {
	return Point{Time: time, Price: price}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %g)", p.Time, p.Price)
}
