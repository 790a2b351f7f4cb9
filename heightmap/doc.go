// Package heightmap loads single-channel raster heightmaps and answers
// bilinear height and gradient queries in source-pixel space.
//
// What:
//
//   - Load decodes PNG (standard library), TIFF and BMP (golang.org/x/image).
//     16-bit sources are normalized by 65535, everything else by 255.
//   - HeightAt interpolates bilinearly with coordinates clamped to the grid.
//   - GradientAt uses central differences with a one-pixel offset.
//   - PixelToWorld / WorldToPixel map between raster space and a world
//     plane centered on the origin spanning terrainSize units.
//   - Resample takes one height per flow cell at the cell center.
//
// Heights are normalized to [0,1]; Altitude scales them into
// [MinAltitude, MaxAltitude].
//
// Errors:
//
//   - ErrLoad: the file could not be opened or decoded as a raster.
//   - ErrEmptyGrid, ErrSizeMismatch: invalid in-memory input to New.
package heightmap
