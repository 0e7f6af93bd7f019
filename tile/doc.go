// Package tile decodes the legacy client's tile files and blits their frames
// into 16-bit rasters.
//
// A tile file is an int32 frame count, an offset table of that many int32
// offsets relative to the end of the table, and the frame data. Frame i spans
// from its offset to the next one; the last frame runs to the end of the file.
//
// Every frame starts with a type byte selecting its family:
//
//   - 0, 1, 8, 9, 16, 17: diamond-raw. 24 rows of explicit colors; row y holds
//     (y+1)*2 pixels for y <= 11 and (23-y)*2 after. Types 1, 9 and 17 start
//     each row at x=0; types 0, 8 and 16 end it at x=23.
//   - 34, 35: blended run. A header (xOffset, yOffset, width, height) is
//     followed by rows of segments; each segment has a skip byte (x advances by
//     skip/2), a length byte, and that many colors. Pixels are combined with the
//     destination using [Blend].
//   - anything else: opaque run. Same layout as blended runs, but pixels
//     overwrite the destination.
//
// Colors are little-endian RGB555. Decoding never reads past the end of a
// frame; a frame that ends early returns [ErrMalformedTile]. Writes into a
// [Raster] are clipped, so pixels outside it are dropped silently.
package tile
