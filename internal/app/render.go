package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/overhangs/internal/digest"
	"github.com/specialistvlad/overhangs/internal/msa"
)

// spacerText marks an empty cell in text tables.
const spacerText = "."

// renderer writes reports in one output format.
type renderer interface {
	alignments(reports []*AlignmentReport) error
	assignments(reports []*AssignmentReport) error
	enzymes(enzymes []digest.Enzyme) error
}

func (a *App) render(fn func(renderer) error) error {
	var r renderer = textRenderer{w: a.outW}
	if a.config.Output == OutputJSON {
		r = jsonRenderer{w: a.outW}
	}
	return fn(r)
}

// textRenderer prints aligned tables.
type textRenderer struct {
	w io.Writer
}

func (t textRenderer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
}

func (t textRenderer) alignments(reports []*AlignmentReport) error {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(t.w)
		}
		res := r.Result
		fmt.Fprintf(t.w, "assembly %s: %d paths, %d shown", r.Assembly, len(res.Rows), len(res.Selected))
		if res.Truncated {
			fmt.Fprint(t.w, " (truncated)")
		}
		fmt.Fprintln(t.w)
		if len(res.Selected) == 0 {
			continue
		}

		tw := t.table()
		header := make([]string, 0, len(res.Generations)+1)
		header = append(header, "#")
		for c := range res.Generations {
			header = append(header, strconv.Itoa(c+1))
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for ri, row := range res.Selected {
			cells := make([]string, 0, len(row)+1)
			cells = append(cells, strconv.Itoa(ri+1))
			for _, c := range row {
				if c.IsSpacer() {
					cells = append(cells, spacerText)
					continue
				}
				cells = append(cells, c.String())
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		for _, s := range res.VariableSegments() {
			fmt.Fprintf(t.w, "columns %d-%d: %d alternatives\n", s.Start+1, s.End+1, len(s.Alternatives))
		}
	}
	return nil
}

func (t textRenderer) assignments(reports []*AssignmentReport) error {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(t.w)
		}
		fmt.Fprintf(t.w, "plasmid %s: syntax %s, enzymes %s\n", r.Plasmid, r.Syntax, strings.Join(r.Enzymes, ", "))
		if len(r.Assignments) == 0 {
			fmt.Fprintln(t.w, "no matching parts")
			continue
		}

		tw := t.table()
		fmt.Fprintln(tw, "LEFT\tRIGHT\tPARTS\tFEATURE\tSTART\tLENGTH")
		for _, pa := range r.Assignments {
			feature := spacerText
			if pa.LongestFeature != nil {
				feature = pa.LongestFeature.Name
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
				pa.LeftOverhang, pa.RightOverhang, strings.Join(pa.Parts, ","), feature, pa.Start, pa.Length)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (t textRenderer) enzymes(enzymes []digest.Enzyme) error {
	tw := t.table()
	fmt.Fprintln(tw, "NAME\tSITE\tSKIP\tOVERHANG")
	for _, e := range enzymes {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", e.Name, e.Site, e.Skip, e.OverhangLen)
	}
	return tw.Flush()
}

// jsonRenderer prints one indented JSON document per call.
type jsonRenderer struct {
	w io.Writer
}

type alignmentJSON struct {
	Assembly  string        `json:"assembly"`
	Columns   int           `json:"columns"`
	Paths     int           `json:"paths"`
	Truncated bool          `json:"truncated"`
	Rows      []msa.Row     `json:"rows"`
	Segments  []msa.Segment `json:"segments"`
}

type assignmentJSON struct {
	Plasmid     string                  `json:"plasmid"`
	Syntax      string                  `json:"syntax"`
	Enzymes     []string                `json:"enzymes"`
	Assignments []digest.PartAssignment `json:"assignments"`
}

func (j jsonRenderer) encode(v any) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (j jsonRenderer) alignments(reports []*AlignmentReport) error {
	out := make([]alignmentJSON, 0, len(reports))
	for _, r := range reports {
		out = append(out, alignmentJSON{
			Assembly:  r.Assembly,
			Columns:   len(r.Result.Generations),
			Paths:     len(r.Result.Rows),
			Truncated: r.Result.Truncated,
			Rows:      r.Result.Selected,
			Segments:  r.Result.Segments,
		})
	}
	return j.encode(out)
}

func (j jsonRenderer) assignments(reports []*AssignmentReport) error {
	out := make([]assignmentJSON, 0, len(reports))
	for _, r := range reports {
		assignments := r.Assignments
		if assignments == nil {
			assignments = []digest.PartAssignment{}
		}
		out = append(out, assignmentJSON{
			Plasmid:     r.Plasmid,
			Syntax:      r.Syntax,
			Enzymes:     r.Enzymes,
			Assignments: assignments,
		})
	}
	return j.encode(out)
}

func (j jsonRenderer) enzymes(enzymes []digest.Enzyme) error {
	return j.encode(enzymes)
}
