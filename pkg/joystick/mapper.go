// Package joystick maps pointer gestures on a rectangular input region to a
// control vector on the unit disc.
package joystick

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r2"
)

// ControlVector is the joystick deflection. Both components lie in [-1, 1]
// and X²+Y² ≤ 1. The zero value is the rest position.
type ControlVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region is the on-screen rectangle that accepts input. X, Y is the lower
// left corner, with Y growing upwards.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether the region has a positive area.
func (r Region) Valid() bool {
	return r.Width > 0 && r.Height > 0 &&
		!math.IsInf(r.Width, 0) && !math.IsInf(r.Height, 0)
}

// Contains reports whether p lies inside the region, edges included.
func (r Region) Contains(p r2.Vec) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the region's center point.
func (r Region) Center() r2.Vec {
	return r2.Vec{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Normalize maps p onto [-1, 1] per axis relative to the region and clamps
// the result onto the unit disc. Points on the disc or inside it are kept
// as is; points outside are projected radially onto its edge.
func Normalize(r Region, p r2.Vec) ControlVector {
	rel := r2.Vec{
		X: -1 + (p.X-r.X)*2/r.Width,
		Y: -1 + (p.Y-r.Y)*2/r.Height,
	}
	norm := math.Max(1, r2.Norm(rel))
	v := r2.Scale(1/norm, rel)
	return ControlVector{X: v.X, Y: v.Y}
}

// Mapper holds the current control vector. Writers are the input handlers;
// any goroutine may read it.
type Mapper struct {
	pose atomic.Pointer[ControlVector]
}

// NewMapper returns a mapper at rest.
func NewMapper() *Mapper {
	m := &Mapper{}
	m.pose.Store(&ControlVector{})
	return m
}

// Begin starts a gesture at p. Points outside r are ignored.
func (m *Mapper) Begin(r Region, p r2.Vec) bool {
	return m.set(r, p)
}

// Update moves an ongoing gesture to p. Points outside r are ignored and
// leave the previous vector in place.
func (m *Mapper) Update(r Region, p r2.Vec) bool {
	return m.set(r, p)
}

// End releases the stick back to rest regardless of where the gesture ended.
func (m *Mapper) End() {
	m.pose.Store(&ControlVector{})
}

// Pose returns a copy of the current vector.
func (m *Mapper) Pose() ControlVector {
	return *m.pose.Load()
}

func (m *Mapper) set(r Region, p r2.Vec) bool {
	if !r.Valid() || !r.Contains(p) {
		return false
	}
	v := Normalize(r, p)
	m.pose.Store(&v)
	return true
}
