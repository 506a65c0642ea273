package ibge

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/invertedv/pnad"
)

const maxLine = 1 << 20

// ReadFixed extracts the fields of layout from fixed-width text. Values are trimmed and kept as
// strings; blank fields are null.
func ReadFixed(r io.Reader, layout Layout) (*pnad.DF, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("empty layout in ReadFixed")
	}

	data := make([][]string, len(layout))
	nulls := make([][]int, len(layout))
	need := layout.LineLength()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	row := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if len(line) < need {
			return nil, fmt.Errorf("line %d: length %d, need %d", row+1, len(line), need)
		}

		for c, f := range layout {
			x := strings.TrimSpace(line[f.Start : f.Start+f.Width])
			if x == "" || x == "." {
				nulls[c] = append(nulls[c], row)
			}

			data[c] = append(data[c], x)
		}

		row++
	}

	if e := scanner.Err(); e != nil {
		return nil, e
	}

	var cols []*pnad.Col
	for c, f := range layout {
		if data[c] == nil {
			data[c] = []string{}
		}

		v, e := pnad.NewVector(data[c], pnad.DTstring)
		if e != nil {
			return nil, e
		}

		for _, ind := range nulls[c] {
			v.SetNull(ind)
		}

		col, e := pnad.NewCol(v, pnad.ColName(f.Name))
		if e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return pnad.NewDF(cols...)
}
