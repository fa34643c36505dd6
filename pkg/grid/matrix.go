package grid

import (
	"fmt"

	"github.com/rdayan/elscan/pkg/textprep"
)

// Blank pads trailing matrix cells when rows*cols exceeds the letter count.
const Blank = ' '

// BuildMatrix arranges the prepared letter stream row-major into rows*cols
// cells. The grid must be at least as large as the stream; trailing cells
// are padded with Blank.
func BuildMatrix(prep *textprep.PreparedText, rows, cols int) ([][]rune, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", rows, cols)
	}
	if rows*cols < prep.Len() {
		return nil, fmt.Errorf("grid: %dx%d grid too small for %d letters", rows, cols, prep.Len())
	}

	stream := prep.Runes()
	matrix := make([][]rune, rows)
	for r := 0; r < rows; r++ {
		row := make([]rune, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i < len(stream) {
				row[c] = stream[i]
			} else {
				row[c] = Blank
			}
		}
		matrix[r] = row
	}
	return matrix, nil
}
