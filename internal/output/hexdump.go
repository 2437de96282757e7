package output

const hexDigits = "0123456789abcdef"

// bytesPerRow is the canonical hex-dump row width.
const bytesPerRow = 16

// HexFormatter renders chunk bytes as an offset/hex/ASCII dump, one row per
// 16 bytes, with optional ANSI coloring for the offset column.
type HexFormatter struct {
	styles   Styles
	useColor bool
}

// NewHexFormatter creates a HexFormatter.
func NewHexFormatter(styles Styles, useColor bool) *HexFormatter {
	return &HexFormatter{
		styles:   styles,
		useColor: useColor,
	}
}

func (f *HexFormatter) Format(buf []byte, c Chunk, multiFile bool) []byte {
	if len(c.Data) == 0 {
		return buf
	}

	if multiFile {
		buf = append(buf, f.styles.Filename.Render(c.Path)...)
		buf = append(buf, f.styles.Separator.Render(":")...)
		buf = append(buf, '\n')
	}

	for off := 0; off < len(c.Data); off += bytesPerRow {
		end := off + bytesPerRow
		if end > len(c.Data) {
			end = len(c.Data)
		}
		buf = f.formatRow(buf, c.Data[off:end], off)
	}
	return buf
}

func (f *HexFormatter) formatRow(buf []byte, row []byte, off int) []byte {
	// Offset column
	if f.useColor {
		buf = append(buf, ansiGreen...)
		buf = appendHex32(buf, off)
		buf = append(buf, ansiReset...)
	} else {
		buf = appendHex32(buf, off)
	}
	buf = append(buf, ' ', ' ')

	// Hex columns, with an extra gap after the eighth byte
	for i := 0; i < bytesPerRow; i++ {
		if i == bytesPerRow/2 {
			buf = append(buf, ' ')
		}
		if i < len(row) {
			b := row[i]
			buf = append(buf, hexDigits[b>>4], hexDigits[b&0xf], ' ')
		} else {
			buf = append(buf, ' ', ' ', ' ')
		}
	}
	buf = append(buf, ' ')

	// ASCII column
	if f.useColor {
		buf = append(buf, ansiCyan...)
	}
	buf = append(buf, '|')
	for _, b := range row {
		if b < 0x20 || b > 0x7e {
			b = '.'
		}
		buf = append(buf, b)
	}
	buf = append(buf, '|')
	if f.useColor {
		buf = append(buf, ansiReset...)
	}

	buf = append(buf, '\n')
	return buf
}

// appendHex32 appends off as eight lowercase hex digits.
func appendHex32(buf []byte, off int) []byte {
	for shift := 28; shift >= 0; shift -= 4 {
		buf = append(buf, hexDigits[(off>>shift)&0xf])
	}
	return buf
}

// Ensure HexFormatter implements Formatter.
var _ Formatter = (*HexFormatter)(nil)

// RawFormatter passes chunk bytes through untouched, suitable for piping
// binary data to another process.
type RawFormatter struct{}

// NewRawFormatter creates a RawFormatter.
func NewRawFormatter() *RawFormatter {
	return &RawFormatter{}
}

func (f *RawFormatter) Format(buf []byte, c Chunk, multiFile bool) []byte {
	return append(buf, c.Data...)
}

// Ensure RawFormatter implements Formatter.
var _ Formatter = (*RawFormatter)(nil)
