package raster

import "math"

// RasterizePoint draws a z-tested square of side size pixels centered on v.
// Points smaller than a pixel still cover one.
func RasterizePoint(fb *FrameBuffer, v ScreenVert, size float64, c [4]uint8) {
	half := math.Max(size, 1) / 2
	minX := int(math.Floor(v.X - half))
	maxX := int(math.Ceil(v.X+half)) - 1
	minY := int(math.Floor(v.Y - half))
	maxY := int(math.Ceil(v.Y+half)) - 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}

	for sy := minY; sy <= maxY; sy++ {
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			zIdx := rowOff + sx
			if v.Z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = v.Z
			pxIdx := zIdx * 4
			fb.Color[pxIdx] = c[0]
			fb.Color[pxIdx+1] = c[1]
			fb.Color[pxIdx+2] = c[2]
			fb.Color[pxIdx+3] = c[3]
		}
	}
}
