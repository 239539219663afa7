package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/pwasik/fuzzdrive/internal/fuzzy"
)

// MembershipGraph renders every labeled set of a linguistic variable as a
// sampled series over the variable's range.
func MembershipGraph(v fuzzy.Variable, width, height int) string {
	series := make([][]float64, len(v.Sets))
	step := (v.Max - v.Min) / float64(width-1)
	for i, set := range v.Sets {
		data := make([]float64, width)
		for j := 0; j < width; j++ {
			data[j] = set.Shape.At(v.Min + float64(j)*step)
		}
		series[i] = data
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s [%g, %g]", v.Name, v.Min, v.Max)),
	)

	labels := make([]string, len(v.Sets))
	for i, set := range v.Sets {
		labels[i] = set.Label
	}
	return graph + "\nlabels: " + strings.Join(labels, ", ")
}
