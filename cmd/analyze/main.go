// Command analyze prints quick, human-readable heuristics about deals. For
// each seed it shows the board and summarizes how deep the aces are buried,
// how many kings block a column, the ordered runs already on the column
// tops and how many cards the opening sweep sends home.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/wricardo/freecell/game/action"
	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/table"
)

// DealAnalysis holds the heuristics for one deal
type DealAnalysis struct {
	Seed uint64

	// AceDepth is the number of cards covering each ace, indexed like engine.Suits
	AceDepth [engine.PileSlots]int

	// BuriedKings counts kings that are not at the bottom of their column
	BuriedKings int

	// TopRuns is the ordered run length on top of each column
	TopRuns [engine.ColumnSlots]int

	// SweptHome is how many cards the sweep sends home before any move
	SweptHome int
}

// Score grows with the work needed to free the aces
func (a DealAnalysis) Score() int {
	score := 2 * a.BuriedKings
	for _, d := range a.AceDepth {
		score += d
	}
	return score - a.SweptHome
}

// Rating buckets Score
func (a DealAnalysis) Rating() string {
	switch s := a.Score(); {
	case s < 10:
		return "Easy"
	case s < 18:
		return "Medium"
	default:
		return "Hard"
	}
}

var defaultSeeds = []uint64{1, 2, 3, 4, 5, 11982, 617}

func main() {
	seeds := defaultSeeds
	if len(os.Args) > 1 {
		seeds = seeds[:0:0]
		for _, arg := range os.Args[1:] {
			seed, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				color.Red("Invalid seed %q: %v", arg, err)
				os.Exit(1)
			}
			seeds = append(seeds, seed)
		}
	}

	for _, seed := range seeds {
		fmt.Printf("\n=== Analyzing deal #%d ===\n", seed)
		printAnalysis(color.Output, analyzeEngine(seed, engine.Deal(seed)), engine.Deal(seed))
	}
}

// analyzeEngine inspects the board of eng without changing it
func analyzeEngine(seed uint64, eng *engine.Engine) DealAnalysis {
	a := DealAnalysis{Seed: seed}

	for i, col := range eng.Columns() {
		for j, c := range col {
			switch c.Rank {
			case engine.MinRank:
				for k, suit := range engine.Suits {
					if c.Suit == suit {
						a.AceDepth[k] = len(col) - j - 1
					}
				}
			case engine.MaxRank:
				if j > 0 {
					a.BuriedKings++
				}
			}
		}
		a.TopRuns[i] = eng.CountGroup(i)
	}

	a.SweptHome = eng.Copy().Sweep()
	return a
}

func printAnalysis(w io.Writer, a DealAnalysis, eng *engine.Engine) {
	warn := color.New(color.FgYellow)
	good := color.New(color.FgGreen)

	fmt.Fprint(w, table.RenderBoard(eng, action.DefaultKeymap()))
	fmt.Fprintln(w)

	for k, suit := range engine.Suits {
		fmt.Fprintf(w, "A%s covered by %d cards\n", suit.Letter(), a.AceDepth[k])
	}
	if a.BuriedKings > 0 {
		warn.Fprintf(w, "⚠️  %d kings are not at the bottom of a column\n", a.BuriedKings)
	} else {
		good.Fprintln(w, "✅ No buried kings")
	}

	longest := 0
	for _, n := range a.TopRuns {
		longest = max(longest, n)
	}
	fmt.Fprintf(w, "Longest ordered run on a column top: %d\n", longest)

	if a.SweptHome > 0 {
		good.Fprintf(w, "✅ %d cards go home before the first move\n", a.SweptHome)
	} else {
		fmt.Fprintln(w, "No card goes home before the first move")
	}

	rating := color.New(color.Bold)
	switch a.Rating() {
	case "Easy":
		rating.Add(color.FgGreen)
	case "Hard":
		rating.Add(color.FgRed)
	default:
		rating.Add(color.FgYellow)
	}
	rating.Fprintf(w, "Rating: %s (score %d)\n", a.Rating(), a.Score())
}
