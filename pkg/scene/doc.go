// Package scene implements the painter3d engine: points, segments and planar
// polygons that are transformed in place, lit by ambient and point lights,
// projected with a fixed camera, ordered farthest-first and issued as draw
// calls against a 2D Surface.
//
// The camera sits on the negative z side looking towards +z. A polygon is
// front-facing when its Newell normal has a negative z component, so callers
// wind polygons clockwise as seen from the camera (x right, y down).
//
// Every transform mutates the receiver and returns it for chaining:
//
//	poly.RotateY(0.3).Translate(0, 0, 40).Perspective(100, 300)
package scene
