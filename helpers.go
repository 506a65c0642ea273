package pnad

import (
	"fmt"
	"math"
	"strings"
)

func Has[C comparable](needle C, haystack []C) bool {
	return Position(needle, haystack) >= 0
}

func Position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}

// *********** Printing ***********

func prettyPrint(header []string, cols ...*Vector) string {
	var colsS [][]string

	for ind := 0; ind < len(cols); ind++ {
		colsS = append(colsS, stringSlice(header[ind], cols[ind]))
	}

	var sb strings.Builder
	for row := 0; row < len(colsS[0]); row++ {
		for c := 0; c < len(colsS); c++ {
			sb.WriteString(colsS[c][row])
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func stringSlice(header string, v *Vector) []string {
	const (
		pad     = 3
		nullRep = "NaN"
	)

	c := []string{header}

	format := ""
	if v.VectorType() == DTfloat {
		format = selectFormat(v)
	}

	maxLen := len(header)
	for ind := 0; ind < v.Len(); ind++ {
		var el string
		switch {
		case v.IsNull(ind):
			el = nullRep
		case v.VectorType() == DTfloat:
			el = fmt.Sprintf(format, v.Element(ind))
		default:
			el = v.ElementString(ind)
		}

		if l := len([]rune(el)); l > maxLen {
			maxLen = l
		}

		c = append(c, el)
	}

	numeric := v.VectorType() == DTint || v.VectorType() == DTfloat
	for ind, cx := range c {
		fill := strings.Repeat(" ", maxLen-len([]rune(cx))+pad)
		if numeric {
			c[ind] = fill + cx
			continue
		}

		c[ind] = cx + fill
	}

	return c
}

func selectFormat(v *Vector) string {
	var (
		minX, maxX float64
		seen       bool
	)
	for ind, xv := range v.AsFloat() {
		if v.IsNull(ind) {
			continue
		}

		xva := math.Abs(xv)
		if !seen || xva < minX {
			minX = xva
		}

		if !seen || xva > maxX {
			maxX = xva
		}

		seen = true
	}

	rangeX := maxX - minX
	if !seen || rangeX == 0 {
		return "%.2f"
	}

	l := math.Log10(rangeX)
	var dp int
	switch {
	case l < -1:
		dp = int(math.Abs(l)+0.5) + 1
	case l > 1:
		dp = 0
	default:
		dp = 1
	}

	return "%." + fmt.Sprintf("%d", dp) + "f"
}
