package canvas2d

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errColorSyntax = errors.New("invalid color syntax")

// ParseColor returns the color described by a CSS color string:
// a hex value (#rgb, #rgba, #rrggbb, #rrggbbaa), an rgb() or rgba()
// function, "transparent" or a CSS named color.
func ParseColor(s string) (color.NRGBA, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	switch {
	case str == "":
		return color.NRGBA{}, fmt.Errorf("%w: empty color", errColorSyntax)
	case str == "transparent":
		return color.NRGBA{}, nil
	case str[0] == '#':
		return parseHex(str[1:])
	case strings.HasPrefix(str, "rgba(") || strings.HasPrefix(str, "rgb("):
		return parseRGB(str)
	}
	c, ok := colornames.Map[str]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: unknown color name %q", errColorSyntax, s)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func parseHex(hex string) (color.NRGBA, error) {
	var digits []uint8
	switch len(hex) {
	case 3, 4: // one digit per channel
		for i := 0; i < len(hex); i++ {
			v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("%w: #%s", errColorSyntax, hex)
			}
			digits = append(digits, uint8(v)<<4|uint8(v))
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("%w: #%s", errColorSyntax, hex)
			}
			digits = append(digits, uint8(v))
		}
	default:
		return color.NRGBA{}, fmt.Errorf("%w: #%s", errColorSyntax, hex)
	}
	c := color.NRGBA{R: digits[0], G: digits[1], B: digits[2], A: 0xff}
	if len(digits) == 4 {
		c.A = digits[3]
	}
	return c, nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma, slash and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '/'
		})
}

func parseRGB(str string) (color.NRGBA, error) {
	lo, hi := strings.IndexByte(str, '('), strings.LastIndexByte(str, ')')
	if hi < lo {
		return color.NRGBA{}, fmt.Errorf("%w: %s", errColorSyntax, str)
	}
	args := splitOnCommaOrSpace(str[lo+1 : hi])
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %s", errColorSyntax, str)
	}
	var channels [4]uint8
	channels[3] = 0xff
	for i, arg := range args {
		var (
			v   float64
			err error
		)
		if i == 3 {
			v, err = readFraction(arg)
			v *= 255
		} else if strings.HasSuffix(arg, "%") {
			v, err = readFraction(arg)
			v *= 255
		} else {
			v, err = strconv.ParseFloat(arg, 64)
		}
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %s", errColorSyntax, str)
		}
		channels[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// readFraction parses a number or a percentage into a fraction
func readFraction(v string) (float64, error) {
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	return f / d, err
}
