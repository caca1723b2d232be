package viewer

import "github.com/Garsondee/tactics-core/internal/grid"

// tileAt maps a screen pixel to the board tile under it. Row 0 is drawn at
// the bottom so north is up.
func (v *Viewer) tileAt(px, py int) (grid.Coord, bool) {
	cols, rows := v.engine.Bounds()
	if px < v.offX || py < v.offY {
		return grid.Coord{}, false
	}
	x := (px - v.offX) / v.tileSize
	row := (py - v.offY) / v.tileSize
	if x >= cols || row >= rows {
		return grid.Coord{}, false
	}
	return grid.C(x, rows-1-row), true
}

// tileOrigin is the top-left pixel of tile c.
func (v *Viewer) tileOrigin(c grid.Coord) (float32, float32) {
	_, rows := v.engine.Bounds()
	x := v.offX + c.X*v.tileSize
	y := v.offY + (rows-1-c.Y)*v.tileSize
	return float32(x), float32(y)
}

// tileCenter is the centre pixel of tile c.
func (v *Viewer) tileCenter(c grid.Coord) (float32, float32) {
	x, y := v.tileOrigin(c)
	h := float32(v.tileSize) / 2
	return x + h, y + h
}
