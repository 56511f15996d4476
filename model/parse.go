package model

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	deadChar  = '0'
	aliveChar = '1'
)

var (
	// ErrInvalidCharacter is returned when the input holds a character other than '0', '1' or a line ending
	ErrInvalidCharacter = errors.New("invalid grid character")
	// ErrRaggedRow is returned when a row length differs from the first row
	ErrRaggedRow = errors.New("number of columns per row is not constant")
	// ErrEmptyGrid is returned when the input holds no cells
	ErrEmptyGrid = errors.New("grid has no cells")
)

// ParseGrid reads a grid where each line is a row of '0' (dead) and '1'
// (alive) characters. A trailing newline is optional and CRLF line endings
// are accepted.
func ParseGrid(r io.Reader) (*Grid, error) {
	var (
		br      = bufio.NewReader(r)
		data    []bool
		rows    int
		columns = -1
		counter int
		line    = 1
	)

	endRow := func() error {
		if columns < 0 {
			columns = counter
		}
		if counter != columns {
			return errors.Wrapf(ErrRaggedRow, "[ParseGrid] line %d has %d columns, want %d", line, counter, columns)
		}
		rows++
		counter = 0
		line++
		return nil
	}

	for {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "[ParseGrid] failed to read input")
		}

		switch ch {
		case deadChar, aliveChar:
			data = append(data, ch == aliveChar)
			counter++
		case '\r':
			if next, _ := br.Peek(1); len(next) == 1 && next[0] == '\n' {
				continue
			}
			return nil, errors.Wrapf(ErrInvalidCharacter, "[ParseGrid] %q at line %d column %d", ch, line, counter+1)
		case '\n':
			if err := endRow(); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Wrapf(ErrInvalidCharacter, "[ParseGrid] %q at line %d column %d", ch, line, counter+1)
		}
	}

	if counter > 0 {
		if err := endRow(); err != nil {
			return nil, err
		}
	}
	if len(data) == 0 {
		return nil, errors.Wrap(ErrEmptyGrid, "[ParseGrid]")
	}

	return NewGrid(rows, columns, data), nil
}

// ParseGridString parses a grid from its textual form
func ParseGridString(s string) (*Grid, error) {
	return ParseGrid(strings.NewReader(s))
}

// LoadGridFile reads and parses the grid stored at path
func LoadGridFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadGridFile] failed to open file: %+v", path)
	}
	defer f.Close()

	g, err := ParseGrid(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadGridFile] failed to parse file: %+v", path)
	}
	return g, nil
}
