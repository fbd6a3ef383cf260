package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewSquare creates a square of the given side length centred on the origin
func NewSquare(size float64) (*Polygon, error) {
	return NewRectangle(size, size)
}

// NewRectangle creates a width × height rectangle centred on the origin
func NewRectangle(width, height float64) (*Polygon, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: rectangle %vx%v", ErrDegeneratePolygon, width, height)
	}

	hw, hh := width*0.5, height*0.5

	return NewPolygon([]mgl64.Vec2{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}, DefaultDensity)
}

// NewRegularPolygon creates a regular polygon with the given circumradius and number of sides
func NewRegularPolygon(radius float64, sides int) (*Polygon, error) {
	if radius <= 0 || sides < 3 {
		return nil, fmt.Errorf("%w: regular polygon r=%v sides=%d", ErrDegeneratePolygon, radius, sides)
	}

	points := make([]mgl64.Vec2, sides)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		points[i] = mgl64.Vec2{radius * math.Cos(angle), radius * math.Sin(angle)}
	}

	return NewPolygon(points, DefaultDensity)
}
