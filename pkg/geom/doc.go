// Package geom defines the renderer-ready geometry that prism layout engines
// produce.
//
// A [Scene] is a discriminated union keyed by its Chart field:
//
//	bar:     Bars   (one box plus caption and value text per item)
//	scatter: Points (one sphere plus optional label per item) and Axes
//	pie:     Wedges (extruded circular sectors with optional labels)
//	surface: Surface (a height-mapped triangle mesh with per-vertex colors)
//
// Every scene also carries a whole-scene Tilt, a rotation about the X axis in
// radians that the renderer applies to the root group. Coordinates are world
// units in a right-handed, Y-up frame.
//
// Scenes are plain data. Once produced they are owned by the caller and are
// never mutated by prism. The JSON encoding is stable: vectors encode as
// [x, y, z] arrays and colors as "#rrggbb" strings, so a scene written with
// [WriteSceneFile] can be loaded by any renderer without importing this
// package.
//
// Meshes use flat buffers in the layout most 3D engines consume directly:
// three floats per vertex for positions, normals and colors, and three
// indices per triangle. [ComputeNormals] produces area-weighted smooth
// vertex normals for such a buffer.
package geom
