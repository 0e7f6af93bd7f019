// Package render composites tile frames into block rasters.
//
// A block is a 64x128 grid of floor cells plus decoration and object layers.
// Grid coordinates are projected into a 3072x1536 block raster with Project,
// and each cell is drawn with [tile.Blit] so the frame's family decides
// whether pixels overwrite or blend.
//
// A Compositor renders single blocks, batches of blocks in parallel, sampled
// low-detail blocks and whole-map thumbnails. Rendered block rasters are
// cached by block key and shared between callers; they must not be modified.
package render
