// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay geometry and palette. Subtitle text sits centered near the bottom
// of the frame on an opaque background box sized to the measured text.
const (
	subtitleBottomMargin = 50
	subtitlePadding      = 10
	boxOutlineThickness  = 2
	labelTextOffset      = 10
)

var (
	subtitleTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	subtitleBackColor = color.RGBA{A: 255}
	boxColor          = color.RGBA{G: 255, A: 255}
)

// textFace is the fixed bitmap face used for subtitle and label text.
var textFace = basicfont.Face7x13

// measureText returns the pixel width and height of s in textFace.
func measureText(s string) (width, height int) {
	metrics := textFace.Metrics()
	return font.MeasureString(textFace, s).Ceil(), metrics.Ascent.Ceil()
}

// drawText renders s with its baseline at (x, y).
func drawText(img *image.RGBA, s string, x, y int, col color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: textFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// fillRect paints the given rectangle, clipped to the frame bounds.
func fillRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// strokeRect draws the outline of r with the given stroke thickness.
func strokeRect(img *image.RGBA, r image.Rectangle, col color.Color, thickness int) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), col)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), col)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), col)
	fillRect(img, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), col)
}

// drawSubtitle renders the chunk text horizontally centered near the bottom
// of the frame over an opaque background box sized to the text extent plus
// fixed padding.
func drawSubtitle(img *image.RGBA, text string) {
	bounds := img.Bounds()
	textWidth, textHeight := measureText(text)

	x := (bounds.Dx() - textWidth) / 2
	y := bounds.Dy() - subtitleBottomMargin

	back := image.Rect(
		x-subtitlePadding, y-textHeight-subtitlePadding,
		x+textWidth+subtitlePadding, y+subtitlePadding,
	)
	fillRect(img, back, subtitleBackColor)
	drawText(img, text, x, y, subtitleTextColor)
}

// drawBoundingBox converts the fractional box to pixel coordinates against
// the frame size, strokes it, and renders the label name just above it.
func drawBoundingBox(img *image.RGBA, name string, left, top, width, height float64) {
	bounds := img.Bounds()
	x := int(left * float64(bounds.Dx()))
	y := int(top * float64(bounds.Dy()))
	w := int(width * float64(bounds.Dx()))
	h := int(height * float64(bounds.Dy()))

	strokeRect(img, image.Rect(x, y, x+w, y+h), boxColor, boxOutlineThickness)
	drawText(img, name, x, y-labelTextOffset, boxColor)
}
