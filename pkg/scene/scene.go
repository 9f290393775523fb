package scene

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Primitive is a Point, Segment or Polygon.
type Primitive interface {
	Depther
	// Points returns the points the primitive owns. Transforms mutate them.
	Points() []*Point
	Render(s Surface) error
	primitive()
}

// Stats counts what the last Render did.
type Stats struct {
	Drawn    int
	Culled   int // back-facing polygons
	Unfilled int // polygons without a fill
}

// Scene is an ordered list of primitives plus a registry of the lights they
// reference. It is not safe for concurrent use.
type Scene struct {
	prims  []Primitive
	lights map[uuid.UUID]*LightSource
	order  []uuid.UUID
	stats  Stats
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{lights: make(map[uuid.UUID]*LightSource)}
}

// Add appends primitives in draw order.
func (s *Scene) Add(prims ...Primitive) error {
	for i, p := range prims {
		if p == nil {
			return fmt.Errorf("scene add: %w: primitive %d is nil", ErrInvalidArgument, i)
		}
	}
	s.prims = append(s.prims, prims...)
	return nil
}

// Len returns the number of primitives.
func (s *Scene) Len() int { return len(s.prims) }

// Primitives returns the primitives in their current order. The slice is a
// copy; the primitives are not.
func (s *Scene) Primitives() []Primitive {
	out := make([]Primitive, len(s.prims))
	copy(out, s.prims)
	return out
}

// AddLight registers l and attaches it to every polygon already in the
// scene. Polygons added afterwards keep their own light lists.
func (s *Scene) AddLight(l *LightSource) error {
	if l == nil {
		return fmt.Errorf("scene add light: %w: nil light", ErrInvalidArgument)
	}
	if _, ok := s.lights[l.ID]; !ok {
		s.order = append(s.order, l.ID)
	}
	s.lights[l.ID] = l
	for _, p := range s.prims {
		if poly, ok := p.(*Polygon); ok {
			poly.AddLight(l)
		}
	}
	return nil
}

// Light looks up a registered light.
func (s *Scene) Light(id uuid.UUID) (*LightSource, bool) {
	l, ok := s.lights[id]
	return l, ok
}

// Lights returns the registered lights in registration order.
func (s *Scene) Lights() []*LightSource {
	out := make([]*LightSource, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lights[id])
	}
	return out
}

// RemoveLight unregisters a light and detaches it from every polygon. It
// reports whether the light was registered.
func (s *Scene) RemoveLight(id uuid.UUID) bool {
	_, ok := s.lights[id]
	delete(s.lights, id)
	for i, have := range s.order {
		if have == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for _, p := range s.prims {
		if poly, ok := p.(*Polygon); ok {
			poly.RemoveLight(id)
		}
	}
	return ok
}

// Each calls fn for every point owned by the scene's primitives.
func (s *Scene) Each(fn func(*Point)) {
	for _, p := range s.prims {
		for _, pt := range p.Points() {
			fn(pt)
		}
	}
}

func (s *Scene) RotateX(angle float64) *Scene {
	s.Each(func(p *Point) { p.RotateX(angle) })
	return s
}

func (s *Scene) RotateY(angle float64) *Scene {
	s.Each(func(p *Point) { p.RotateY(angle) })
	return s
}

func (s *Scene) RotateZ(angle float64) *Scene {
	s.Each(func(p *Point) { p.RotateZ(angle) })
	return s
}

func (s *Scene) Scale(f float64) *Scene {
	s.Each(func(p *Point) { p.Scale(f) })
	return s
}

func (s *Scene) Translate(dx, dy, dz float64) *Scene {
	s.Each(func(p *Point) { p.Translate(dx, dy, dz) })
	return s
}

// ApplyLights lights every polygon. Call it before Project: lighting uses
// world-space normals and positions.
func (s *Scene) ApplyLights() *Scene {
	for _, p := range s.prims {
		if poly, ok := p.(*Polygon); ok {
			poly.ApplyLights()
		}
	}
	return s
}

// Project applies pr to every primitive.
func (s *Scene) Project(pr Projection) error {
	if err := pr.Validate(); err != nil {
		return err
	}
	for _, p := range s.prims {
		pr.Apply(p)
	}
	return nil
}

// Sort orders the primitives farthest first.
func (s *Scene) Sort() *Scene {
	SortByDepth(s.prims)
	return s
}

// Render draws every primitive in the current order and records Stats.
// It stops at the first surface error.
func (s *Scene) Render(surf Surface) error {
	if noSurface(surf) {
		return fmt.Errorf("scene render: %w", ErrInvalidContext)
	}
	var st Stats
	for _, p := range s.prims {
		if poly, ok := p.(*Polygon); ok {
			switch {
			case poly.Fill == nil:
				st.Unfilled++
				continue
			case !poly.ShouldRender():
				st.Culled++
				continue
			}
		}
		if err := p.Render(surf); err != nil {
			s.stats = st
			return fmt.Errorf("scene render: %w", err)
		}
		st.Drawn++
	}
	s.stats = st
	if f, ok := surf.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("scene render: flush: %w", err)
		}
	}
	return nil
}

// Draw runs one frame: lights, projection, depth sort, render. The scene is
// mutated; draw a Clone to keep the original geometry.
func (s *Scene) Draw(surf Surface, pr Projection) error {
	if noSurface(surf) {
		return fmt.Errorf("scene draw: %w", ErrInvalidContext)
	}
	s.ApplyLights()
	if err := s.Project(pr); err != nil {
		return fmt.Errorf("scene draw: %w", err)
	}
	s.Sort()
	return s.Render(surf)
}

// Stats returns the counts from the last Render.
func (s *Scene) Stats() Stats { return s.stats }

// Clone deep-copies every primitive. Lights are shared with the original.
func (s *Scene) Clone() *Scene {
	c := &Scene{
		prims:  make([]Primitive, len(s.prims)),
		lights: make(map[uuid.UUID]*LightSource, len(s.lights)),
		order:  append([]uuid.UUID(nil), s.order...),
	}
	for id, l := range s.lights {
		c.lights[id] = l
	}
	for i, p := range s.prims {
		switch v := p.(type) {
		case *Point:
			c.prims[i] = v.Clone()
		case *Segment:
			c.prims[i] = v.Clone()
		case *Polygon:
			c.prims[i] = v.Clone()
		}
	}
	return c
}

// TransformParallel runs fn over every primitive using at most workers
// goroutines. fn must only touch the primitive it is given; lights must not
// be mutated until it returns. The first error cancels the remaining work.
func (s *Scene) TransformParallel(ctx context.Context, workers int, fn func(Primitive) error) error {
	if fn == nil {
		return fmt.Errorf("scene transform: %w: nil func", ErrInvalidArgument)
	}
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, p := range s.prims {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(p)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("scene transform: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scene transform: %w", err)
	}
	return nil
}
