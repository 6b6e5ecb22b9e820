package types

import "fmt"

// Glyph - цветной символ клетки или объекта, упакованный в uint32.
//
//	[0:8]  - ASCII символ
//	[8:32] - RGB-цвет 0xRRGGBB
//
// Один и тот же Glyph рисует и терминальный клиент, и веб-клиент (через DTO).
type Glyph uint32

const (
	bitsChar   = 8
	bitsColor  = 24
	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1
	maskColor = (1 << bitsColor) - 1
)

// MakeGlyph собирает Glyph. Старший байт цвета отбрасывается.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// Rune - символ для tcell.SetContent
func (g Glyph) Rune() rune {
	return rune(g.Char())
}

// RGB раскладывает цвет на компоненты
func (g Glyph) RGB() (r, gr, b int32) {
	c := g.Color()
	return int32(c >> 16 & 0xFF), int32(c >> 8 & 0xFF), int32(c & 0xFF)
}

// HexColor - цвет для веб-клиента, например "#00FF00"
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}
