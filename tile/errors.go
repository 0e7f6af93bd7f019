package tile

import "github.com/meigma/pak/internal/paktype"

// ErrMalformedTile is returned when an offset table, frame header or frame
// stream is inconsistent with its buffer length.
var ErrMalformedTile = paktype.ErrMalformedTile
