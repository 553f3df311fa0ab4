package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/shenikar/estate_tracker/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	barWidth     = 48
	barGap       = 24
	marginLeft   = 40
	marginRight  = 40
	marginTop    = 70
	marginBottom = 80
	minWidth     = 480
	maxLabelLen  = 10
)

var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	axisColor       = color.RGBA{52, 73, 94, 255}
	textColor       = color.RGBA{44, 62, 80, 255}
)

var (
	fontOnce   sync.Once
	parsedFont *truetype.Font
	fontErr    error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = freetype.ParseFont(goregular.TTF)
	})
	return parsedFont, fontErr
}

// RenderPNG рисует столбчатую диаграмму в PNG
func RenderPNG(w io.Writer, view models.ChartView) error {
	f, err := loadFont()
	if err != nil {
		return fmt.Errorf("chart: failed to parse font: %w", err)
	}

	plotHeight := int(math.Ceil(view.Height))
	width := marginLeft + len(view.Bars)*(barWidth+barGap) + barGap + marginRight
	if width < minWidth {
		width = minWidth
	}
	height := marginTop + plotHeight + marginBottom

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	baseline := marginTop + plotHeight
	draw.Draw(img, image.Rect(marginLeft, baseline, width-marginRight, baseline+2), image.NewUniform(axisColor), image.Point{}, draw.Src)

	title := newDrawer(img, f, 20)
	drawCentered(title, view.Title, width/2, 35)

	small := newDrawer(img, f, 12)
	for i, bar := range view.Bars {
		c, err := parseHexColor(bar.Color)
		if err != nil {
			return fmt.Errorf("chart: bar %q: %w", bar.Place, err)
		}

		x0 := marginLeft + barGap + i*(barWidth+barGap)
		y0 := baseline - int(math.Round(bar.Height))
		draw.Draw(img, image.Rect(x0, y0, x0+barWidth, baseline), image.NewUniform(c), image.Point{}, draw.Src)

		center := x0 + barWidth/2
		drawCentered(small, strconv.Itoa(bar.DaysSpent), center, y0-6)
		drawCentered(small, truncateLabel(bar.Place), center, baseline+20)
	}

	legend := newDrawer(img, f, 14)
	drawCentered(legend, fmt.Sprintf("Total: %d days", view.TotalDays), width/2, height-25)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("chart: failed to encode png: %w", err)
	}
	return nil
}

func newDrawer(dst draw.Image, f *truetype.Font, size float64) *font.Drawer {
	return &font.Drawer{
		Dst: dst,
		Src: image.NewUniform(textColor),
		Face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}
}

func drawCentered(d *font.Drawer, text string, centerX, baselineY int) {
	advance := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(centerX) - advance/2,
		Y: fixed.I(baselineY),
	}
	d.DrawString(text)
}

func truncateLabel(place string) string {
	runes := []rune(place)
	if len(runes) <= maxLabelLen {
		return place
	}
	return string(runes[:maxLabelLen-1]) + "…"
}

// parseHexColor разбирает цвет вида #rrggbb
func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
