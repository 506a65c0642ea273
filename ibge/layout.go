package ibge

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"golang.org/x/text/encoding/charmap"
)

// Field is the position of one variable in the fixed-width microdata. Start is 0-based.
type Field struct {
	Name  string
	Start int
	Width int
}

// Layout is the ordered set of fields of a microdata file.
type Layout []Field

// statements look like
//
//	@0006   UF      $2.    /* Unidade da Federação */
//	@0059   V1028   15.
var inputStatement = regexp.MustCompile(`^\s*@(\d+)\s+(\w+)\s+\$?(\d+)\.`)

// ParseLayout reads the SAS input statements IBGE ships with the microdata. The file is Latin-1.
func ParseLayout(r io.Reader) (Layout, error) {
	scanner := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(r))

	var layout Layout
	for scanner.Scan() {
		m := inputStatement.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		start, e := strconv.Atoi(m[1])
		if e != nil {
			return nil, e
		}

		width, e := strconv.Atoi(m[3])
		if e != nil {
			return nil, e
		}

		if start < 1 || width < 1 {
			return nil, fmt.Errorf("bad input statement: %s", scanner.Text())
		}

		layout = append(layout, Field{Name: m[2], Start: start - 1, Width: width})
	}

	if e := scanner.Err(); e != nil {
		return nil, e
	}

	if len(layout) == 0 {
		return nil, fmt.Errorf("no input statements found")
	}

	return layout, nil
}

// Select returns the fields named in cols, in that order.
func (l Layout) Select(cols ...string) (Layout, error) {
	var out Layout
	for _, cn := range cols {
		found := false
		for _, f := range l {
			if f.Name == cn {
				out = append(out, f)
				found = true
				break
			}
		}

		if !found {
			return nil, fmt.Errorf("variable %s not in layout", cn)
		}
	}

	return out, nil
}

// LineLength is the shortest line that holds every field of l.
func (l Layout) LineLength() int {
	n := 0
	for _, f := range l {
		if end := f.Start + f.Width; end > n {
			n = end
		}
	}

	return n
}
