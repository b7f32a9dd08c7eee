package bench

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Renders the arena progress and results on a terminal. Colours are
// picked from the output's profile, so a plain file gets plain text
type SummaryPrinter[M comparable] struct {
	out *termenv.Output
}

func NewSummaryPrinter[M comparable](w io.Writer, opts ...termenv.OutputOption) *SummaryPrinter[M] {
	return &SummaryPrinter[M]{out: termenv.NewOutput(w, opts...)}
}

func (sp *SummaryPrinter[M]) OnMoveMade(info VersusWorkerInfo[M]) {

}

func (sp *SummaryPrinter[M]) OnFinishedGame(info VersusWorkerInfo[M]) {
	fmt.Fprintf(sp.out, "game %3d/%d  %s %d - %d %s  (draws %d, %d moves)\n",
		info.FinishedGames, info.NGames,
		info.P1Name, info.P1Wins, info.P2Wins, info.P2Name,
		info.Draws, info.GameMoveNum)
}

func (sp *SummaryPrinter[M]) Summary(summary VersusSummaryInfo) {
	title := sp.out.String("Summary").Bold()
	fmt.Fprintf(sp.out, "\n%s (%d games, %d workers)\n", title, summary.TotalGames, summary.Workers)

	p1 := sp.out.String(fmt.Sprintf("%-12s %4d", summary.P1Name, summary.P1Wins))
	p2 := sp.out.String(fmt.Sprintf("%-12s %4d", summary.P2Name, summary.P2Wins))
	switch {
	case summary.P1Wins > summary.P2Wins:
		p1 = p1.Foreground(termenv.ANSIGreen).Bold()
	case summary.P2Wins > summary.P1Wins:
		p2 = p2.Foreground(termenv.ANSIGreen).Bold()
	}

	fmt.Fprintf(sp.out, "  %s\n  %s\n  %-12s %4d\n", p1, p2, "draws", summary.Draws)
	fmt.Fprintf(sp.out, "  first to move won %d, second %d\n", summary.FirstToMoveWins, summary.SecondToMoveWins)
}

// Print the win rates of seat 0, rows are seat 0 budgets, columns seat 1
func (sp *SummaryPrinter[M]) Matrix(result *MatrixResult) {
	builder := strings.Builder{}
	builder.WriteString(sp.out.String(fmt.Sprintf("%8s", "p1\\p2")).Faint().String())
	for _, b := range result.Budgets {
		builder.WriteString(sp.out.String(fmt.Sprintf("%8d", b)).Bold().String())
	}
	builder.WriteByte('\n')

	for i, b := range result.Budgets {
		builder.WriteString(sp.out.String(fmt.Sprintf("%8d", b)).Bold().String())
		for j := range result.Budgets {
			rate := result.WinRate(i, j)
			cell := sp.out.String(fmt.Sprintf("%8.2f", rate))
			switch {
			case rate > 0.5:
				cell = cell.Foreground(termenv.ANSIGreen)
			case rate < 0.5:
				cell = cell.Foreground(termenv.ANSIRed)
			}
			builder.WriteString(cell.String())
		}
		builder.WriteByte('\n')
	}
	fmt.Fprint(sp.out, builder.String())
}
