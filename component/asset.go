package component

import (
	"fmt"
	"strings"
)

// Default asset addressing.
const (
	DefaultAssetBase = "./assets/pets"
	DefaultExtension = "png"
)

// FramePath builds "<base>/<prefix>_<anim>-<i>.<ext>".
func FramePath(base, prefix, anim string, i int, ext string) string {
	base = strings.TrimSuffix(base, "/")
	ext = strings.TrimPrefix(ext, ".")
	if base == "" {
		return fmt.Sprintf("%s_%s-%d.%s", prefix, anim, i, ext)
	}
	return fmt.Sprintf("%s/%s_%s-%d.%s", base, prefix, anim, i, ext)
}
