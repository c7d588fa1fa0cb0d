package texture

// InpaintPasses is how many dilation rounds the generated textures get.
// Each pass grows covered regions by one texel, enough to hide chart
// padding under bilinear filtering and mipmapping.
const InpaintPasses = 5

// Inpaint grows the covered region of every image by averaging, for each
// uncovered texel, its covered 3x3 neighbors. All images share one mask
// and are filled in lockstep so their seams agree. The mask is updated to
// reflect the final coverage.
func Inpaint(mask *Mask, passes int, images ...*Image) {
	for _, im := range images {
		if im.Width != mask.Width || im.Height != mask.Height {
			panic("texture: inpaint image extent does not match mask")
		}
	}
	w, h := mask.Width, mask.Height
	next := make([]bool, len(mask.bits))
	sums := make([][]float32, len(images))
	for i, im := range images {
		sums[i] = make([]float32, im.Channels)
	}

	for pass := 0; pass < passes; pass++ {
		copy(next, mask.bits)
		changed := false
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if mask.bits[y*w+x] {
					continue
				}
				n := 0
				for i := range sums {
					for c := range sums[i] {
						sums[i][c] = 0
					}
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						if !mask.bits[ny*w+nx] {
							continue
						}
						n++
						for i, im := range images {
							for c := 0; c < im.Channels; c++ {
								sums[i][c] += im.At(nx, ny, c)
							}
						}
					}
				}
				if n == 0 {
					continue
				}
				inv := 1 / float32(n)
				for i, im := range images {
					base := (y*w + x) * im.Channels
					for c := 0; c < im.Channels; c++ {
						im.Pix[base+c] = sums[i][c] * inv
					}
				}
				next[y*w+x] = true
				changed = true
			}
		}
		copy(mask.bits, next)
		if !changed {
			break
		}
	}
}
