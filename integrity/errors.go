package integrity

import "github.com/meigma/pak/internal/paktype"

// ErrCorruptAsset is wrapped by Report.Err for invalid reports.
var ErrCorruptAsset = paktype.ErrCorruptAsset
