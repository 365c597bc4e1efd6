package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FontRenderer is the interface for drawing text onto images.
// Implementations can be swapped (e.g., bitmap font, TTF font).
type FontRenderer interface {
	// DrawString draws the given text centered at (cx, cy) on the image
	// with the specified color and font size (approximate height in pixels).
	DrawString(img *image.RGBA, text string, cx, cy int, col color.Color, size int)

	// MeasureString returns the approximate width and height of the text
	// at the given font size.
	MeasureString(text string, size int) (width, height int)
}

// BitmapFont draws size captions ("640x480") from 5x7 glyphs.
type BitmapFont struct{}

// NewBitmapFont creates a new BitmapFont.
func NewBitmapFont() *BitmapFont {
	return &BitmapFont{}
}

var glyphs = map[rune][7]uint8{
	'0': {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
	'1': {0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'2': {0x0E, 0x11, 0x01, 0x06, 0x08, 0x10, 0x1F},
	'3': {0x0E, 0x11, 0x01, 0x06, 0x01, 0x11, 0x0E},
	'4': {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
	'5': {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
	'6': {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
	'7': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8': {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
	'9': {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},
	'x': {0x00, 0x00, 0x11, 0x0A, 0x04, 0x0A, 0x11},
	'-': {0x00, 0x00, 0x00, 0x1F, 0x00, 0x00, 0x00},
}

const (
	glyphWidth  = 5
	glyphHeight = 7
)

func glyphScale(size int) int {
	return max(size/glyphHeight, 1)
}

func (bf *BitmapFont) DrawString(img *image.RGBA, text string, cx, cy int, col color.Color, size int) {
	scale := glyphScale(size)
	totalW, totalH := bf.MeasureString(text, size)
	origin := img.Bounds().Min.Add(image.Pt(cx-totalW/2, cy-totalH/2))
	ink := image.NewUniform(col)

	for i, ch := range []rune(text) {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		left := origin.X + i*(glyphWidth+1)*scale
		for row := 0; row < glyphHeight; row++ {
			for bit := 0; bit < glyphWidth; bit++ {
				if glyph[row]&(1<<(glyphWidth-1-bit)) == 0 {
					continue
				}
				block := image.Rect(0, 0, scale, scale).Add(image.Pt(left+bit*scale, origin.Y+row*scale))
				draw.Draw(img, block.Intersect(img.Bounds()), ink, image.Point{}, draw.Src)
			}
		}
	}
}

func (bf *BitmapFont) MeasureString(text string, size int) (width, height int) {
	scale := glyphScale(size)
	n := len([]rune(text))
	if n == 0 {
		return 0, 0
	}
	return n*(glyphWidth*scale) + (n-1)*scale, glyphHeight * scale
}
