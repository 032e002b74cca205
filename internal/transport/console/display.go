package console

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/seabattle/internal/entity"
)

const (
	glyphEmpty = "."
	glyphShip  = "■"
	glyphHit   = "X"
	glyphMiss  = "0"
)

// Display writes boards and narration to the terminal.
type Display struct {
	logger *slog.Logger
	out    io.Writer
}

func NewDisplay(logger *slog.Logger, out io.Writer) *Display {
	return &Display{
		logger: logger.With("component", "display"),
		out:    out,
	}
}

// Render prints the board as a grid. A concealed board shows ships like empty water;
// hits and misses stay visible.
func (that *Display) Render(board *entity.Board, concealed bool) {
	that.write(FormatBoard(board, concealed))
}

func (that *Display) Announce(message string) {
	that.write(message + "\n")
}

func (that *Display) Greet() {
	that.write(strings.Join([]string{
		"___________________",
		"|   SEA  BATTLE   |",
		"|*****************|",
		"| Specify x and y |",
		"|_____to shoot____|",
	}, "\n") + "\n")
}

func (that *Display) write(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write to display", "error", err)
	}
}

// FormatBoard renders a board snapshot, header row first.
func FormatBoard(board *entity.Board, concealed bool) string {
	width := len(strconv.Itoa(board.Size))

	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", width+1))
	for col := 1; col <= board.Size; col++ {
		fmt.Fprintf(&sb, "|%*d", width, col)
	}
	sb.WriteString("|\n")

	for row := 1; row <= board.Size; row++ {
		fmt.Fprintf(&sb, "%-*d ", width, row)
		for col := 1; col <= board.Size; col++ {
			fmt.Fprintf(&sb, "|%*s", width, glyph(board.CellState(entity.NewCoordinate(row, col)), concealed))
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}

func glyph(state entity.CellState, concealed bool) string {
	switch state {
	case entity.CellShip:
		if concealed {
			return glyphEmpty
		}
		return glyphShip
	case entity.CellHit:
		return glyphHit
	case entity.CellMiss:
		return glyphMiss
	default:
		return glyphEmpty
	}
}
