package itemui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	plain := lipgloss.NewStyle()
	out := wrapText("the quick brown fox", plain, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if lines[0] != plain.Render("t")+plain.Render("h")+plain.Render("e")+plain.Render(" ")+
		plain.Render("q")+plain.Render("u")+plain.Render("i")+plain.Render("c")+plain.Render("k") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestWrapTextBreaksLongWords(t *testing.T) {
	cells := buildCells("abcdefgh", lipgloss.NewStyle())
	out := wrapCells(cells, 3)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
}

func TestBuildCellsWidths(t *testing.T) {
	cells := buildCells("a射\n", lipgloss.NewStyle())
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	if cells[0].width != 1 || cells[1].width != 2 {
		t.Fatalf("unexpected widths %d %d", cells[0].width, cells[1].width)
	}
	if !cells[2].isSpace {
		t.Fatalf("expected newline to become a space")
	}
	if lineWidthOf(cells) != 4 || lastSpaceIndex(cells) != 2 {
		t.Fatalf("unexpected line metrics")
	}
}

func TestStatLineAlignsWideNames(t *testing.T) {
	a := statLine("射程", 8, "62", "███░", "")
	b := statLine("Range", 8, "62", "███░", "base 55")
	if runewidth.StringWidth(a) != runewidth.StringWidth(strings.TrimSuffix(b, "  base 55")) {
		t.Fatalf("expected equal widths:\n%q\n%q", a, b)
	}
	if !strings.HasPrefix(b, "Range    ") {
		t.Fatalf("expected padded name, got %q", b)
	}
	if got := statLine("Aim Assistance", 5, "10", "", ""); got != "Aim …     10" {
		t.Fatalf("expected truncated name, got %q", got)
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	if out != "a  \nb  " {
		t.Fatalf("unexpected fit %q", out)
	}
	out = fitLines("a", 2, 3)
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected padding lines, got %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}
