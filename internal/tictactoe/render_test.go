package tictactoe

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

func TestRender(t *testing.T) {
	t.Run("Empty board", func(t *testing.T) {
		expected := "  1 2 3\n" +
			"1       \n" +
			"2       \n" +
			"3       \n"

		assert.Equal(t, expected, Render(entity.Board{}))
	})

	t.Run("Mixed board", func(t *testing.T) {
		board := entity.BoardFromRows([3][3]entity.Cell{
			{x, e, o},
			{e, x, e},
			{o, e, e},
		})

		expected := "  1 2 3\n" +
			"1 X   O \n" +
			"2   X   \n" +
			"3 O     \n"

		assert.Equal(t, expected, Render(board))
	})
}

func TestParseCoordinates(t *testing.T) {
	t.Run("Column comes first and both are 1-indexed", func(t *testing.T) {
		row, col, err := ParseCoordinates("3 1")

		require.NoError(t, err)
		assert.Equal(t, 0, row)
		assert.Equal(t, 2, col)
	})

	t.Run("Extra whitespace is ignored", func(t *testing.T) {
		row, col, err := ParseCoordinates("  2\t2 \n")

		require.NoError(t, err)
		assert.Equal(t, [2]int{1, 1}, [2]int{row, col})
	})

	t.Run("Malformed input", func(t *testing.T) {
		for _, input := range []string{"", "1", "1 2 3", "a 1", "1 b"} {
			_, _, err := ParseCoordinates(input)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput, "input %q", input)
		}
	})

	t.Run("Out of range values reach the engine as out of range", func(t *testing.T) {
		row, col, err := ParseCoordinates("4 4")
		require.NoError(t, err)

		engine := NewEngine(FixedStart(entity.PlayerX))
		assert.ErrorIs(t, engine.Move(row, col), apperror.ErrOutOfRange)
	})
}

func TestRender_LabelsRoundTrip(t *testing.T) {
	for cell := range entity.CellCount {
		// Given: a board with a single X
		var board entity.Board
		board[cell] = entity.PlayerX

		// When: reading back the labels printed next to that X
		lines := strings.Split(Render(board), "\n")
		header := lines[0]

		var label string
		for r, line := range lines[1 : entity.BoardSize+1] {
			if idx := strings.Index(line, "X"); idx >= 0 {
				rowLabel := line[:1]
				colLabel := header[idx : idx+1]
				label = fmt.Sprintf("%s %s", colLabel, rowLabel)
				require.Equal(t, fmt.Sprint(r+1), rowLabel)
			}
		}

		// Then: parsing the labels addresses the same internal cell
		row, col, err := ParseCoordinates(label)
		require.NoError(t, err)
		assert.Equal(t, cell, row*entity.BoardSize+col)
	}
}
