package registry

import (
	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/model"
)

const textureSize = 16

// generateTexture produces a 16x16 speckled texture from a primary color with
// secondary noise and a sparse diagonal highlight.
func generateTexture(rnd random.Random, primary, secondary, highlight string) model.Texture {
	texture := make(model.Texture, textureSize)
	for y := 0; y < textureSize; y++ {
		row := make([]string, textureSize)
		for x := 0; x < textureSize; x++ {
			switch {
			case (x+y)%7 == 0 && rnd.Float64() > 0.5:
				row[x] = highlight
			case rnd.Float64() > 0.7:
				row[x] = secondary
			default:
				row[x] = primary
			}
		}
		texture[y] = row
	}
	return texture
}
