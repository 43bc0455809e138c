// Package palette holds texture coordinates into the shared tile palette atlas.
package palette

import "fmt"

// UV is a texture coordinate pair into the palette atlas.
type UV struct {
	U float32
	V float32
}

// String returns the pair as "(u, v)".
func (uv UV) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", uv.U, uv.V)
}

// Palette slots used by the terrain generator.
var (
	GlowYellow  = UV{U: 0.523438, V: 0.367188} // Active terrain
	BaseBlack   = UV{U: 0.367188, V: 0.023438} // Baseline ground
	MirrorBlack = UV{U: 0.804688, V: 0.734375}
)

// Named maps slot names to their coordinates, for tooling output.
var Named = map[string]UV{
	"glow_yellow":  GlowYellow,
	"base_black":   BaseBlack,
	"mirror_black": MirrorBlack,
}

// Lookup returns the name of the slot at uv, or "" if uv is not a known slot.
func Lookup(uv UV) string {
	for name, slot := range Named {
		if slot == uv {
			return name
		}
	}
	return ""
}
