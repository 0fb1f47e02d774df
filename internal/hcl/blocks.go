package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/overhangs/internal/config"
)

// rootSchema lists every top-level block a file may contain.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "settings"},
		{Type: "assembly", LabelNames: []string{"name"}},
		{Type: "syntax", LabelNames: []string{"name"}},
		{Type: "enzyme", LabelNames: []string{"name"}},
		{Type: "plasmid", LabelNames: []string{"name"}},
	},
}

type settingsBlock struct {
	MaxPaths hcl.Expression `hcl:"max_paths,optional"`
}

type assemblyBlock struct {
	Paths     hcl.Expression `hcl:"paths,optional"`
	PathsText hcl.Expression `hcl:"paths_text,optional"`
}

type syntaxBlock struct {
	Description hcl.Expression `hcl:"description,optional"`
	Parts       []*partBlock   `hcl:"part,block"`
}

type partBlock struct {
	Name          string         `hcl:"name,label"`
	LeftOverhang  hcl.Expression `hcl:"left_overhang"`
	RightOverhang hcl.Expression `hcl:"right_overhang"`
	Description   hcl.Expression `hcl:"description,optional"`
}

type enzymeBlock struct {
	Site           hcl.Expression `hcl:"site"`
	Skip           hcl.Expression `hcl:"skip"`
	OverhangLength hcl.Expression `hcl:"overhang_length"`
}

type plasmidBlock struct {
	Syntax   hcl.Expression  `hcl:"syntax"`
	Sequence hcl.Expression  `hcl:"sequence"`
	Circular hcl.Expression  `hcl:"circular,optional"`
	Enzymes  hcl.Expression  `hcl:"enzymes"`
	Features []*featureBlock `hcl:"feature,block"`
}

type featureBlock struct {
	Name  string         `hcl:"name,label"`
	Start hcl.Expression `hcl:"start"`
	End   hcl.Expression `hcl:"end"`
}

// translateSettings converts a `settings` block into the agnostic model.
func translateSettings(ctx context.Context, c *converter, block *hcl.Block) (config.Settings, error) {
	var raw settingsBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &raw); diags.HasErrors() {
		return config.Settings{}, diags
	}
	var s config.Settings
	if isExprDefined(raw.MaxPaths) {
		var n int
		if err := c.eval(ctx, raw.MaxPaths, "max_paths", &n); err != nil {
			return config.Settings{}, err
		}
		s.MaxPaths = &n
	}
	return s, nil
}

// translateAssembly converts an `assembly` block into the agnostic model.
func translateAssembly(ctx context.Context, c *converter, block *hcl.Block) (*config.Assembly, error) {
	var raw assemblyBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &raw); diags.HasErrors() {
		return nil, diags
	}
	a := &config.Assembly{Name: block.Labels[0]}
	if err := c.evalOptional(ctx, raw.Paths, "paths", &a.Paths); err != nil {
		return nil, fmt.Errorf("in assembly '%s': %w", a.Name, err)
	}
	if err := c.evalOptional(ctx, raw.PathsText, "paths_text", &a.PathsText); err != nil {
		return nil, fmt.Errorf("in assembly '%s': %w", a.Name, err)
	}
	if len(a.Paths) == 0 && strings.TrimSpace(a.PathsText) == "" {
		return nil, fmt.Errorf("assembly '%s' declares neither paths nor paths_text", a.Name)
	}
	return a, nil
}

// translateSyntax converts a `syntax` block and its parts into the agnostic model.
func translateSyntax(ctx context.Context, c *converter, block *hcl.Block) (*config.Syntax, error) {
	var raw syntaxBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &raw); diags.HasErrors() {
		return nil, diags
	}
	s := &config.Syntax{Name: block.Labels[0]}
	if err := c.evalOptional(ctx, raw.Description, "description", &s.Description); err != nil {
		return nil, fmt.Errorf("in syntax '%s': %w", s.Name, err)
	}

	seen := make(map[string]struct{}, len(raw.Parts))
	for _, p := range raw.Parts {
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("in syntax '%s': duplicate part '%s'", s.Name, p.Name)
		}
		seen[p.Name] = struct{}{}

		part := &config.Part{Name: p.Name}
		if err := c.eval(ctx, p.LeftOverhang, "left_overhang", &part.LeftOverhang); err != nil {
			return nil, fmt.Errorf("in syntax '%s', part '%s': %w", s.Name, p.Name, err)
		}
		if err := c.eval(ctx, p.RightOverhang, "right_overhang", &part.RightOverhang); err != nil {
			return nil, fmt.Errorf("in syntax '%s', part '%s': %w", s.Name, p.Name, err)
		}
		if err := c.evalOptional(ctx, p.Description, "description", &part.Description); err != nil {
			return nil, fmt.Errorf("in syntax '%s', part '%s': %w", s.Name, p.Name, err)
		}
		s.Parts = append(s.Parts, part)
	}
	return s, nil
}

// translateEnzyme converts an `enzyme` block into the agnostic model.
func translateEnzyme(ctx context.Context, c *converter, block *hcl.Block) (*config.Enzyme, error) {
	var raw enzymeBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &raw); diags.HasErrors() {
		return nil, diags
	}
	e := &config.Enzyme{Name: block.Labels[0]}
	if err := c.eval(ctx, raw.Site, "site", &e.Site); err != nil {
		return nil, fmt.Errorf("in enzyme '%s': %w", e.Name, err)
	}
	if err := c.eval(ctx, raw.Skip, "skip", &e.Skip); err != nil {
		return nil, fmt.Errorf("in enzyme '%s': %w", e.Name, err)
	}
	if err := c.eval(ctx, raw.OverhangLength, "overhang_length", &e.OverhangLength); err != nil {
		return nil, fmt.Errorf("in enzyme '%s': %w", e.Name, err)
	}
	return e, nil
}

// translatePlasmid converts a `plasmid` block and its features into the
// agnostic model. Plasmids are circular unless stated otherwise.
func translatePlasmid(ctx context.Context, c *converter, block *hcl.Block) (*config.Plasmid, error) {
	var raw plasmidBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &raw); diags.HasErrors() {
		return nil, diags
	}
	p := &config.Plasmid{Name: block.Labels[0], Circular: true}
	if err := c.eval(ctx, raw.Syntax, "syntax", &p.Syntax); err != nil {
		return nil, fmt.Errorf("in plasmid '%s': %w", p.Name, err)
	}
	var sequence string
	if err := c.eval(ctx, raw.Sequence, "sequence", &sequence); err != nil {
		return nil, fmt.Errorf("in plasmid '%s': %w", p.Name, err)
	}
	p.Sequence = cleanSequence(sequence)
	if err := c.evalOptional(ctx, raw.Circular, "circular", &p.Circular); err != nil {
		return nil, fmt.Errorf("in plasmid '%s': %w", p.Name, err)
	}
	if err := c.eval(ctx, raw.Enzymes, "enzymes", &p.Enzymes); err != nil {
		return nil, fmt.Errorf("in plasmid '%s': %w", p.Name, err)
	}

	for _, f := range raw.Features {
		feature := &config.Feature{Name: f.Name}
		if err := c.eval(ctx, f.Start, "start", &feature.Start); err != nil {
			return nil, fmt.Errorf("in plasmid '%s', feature '%s': %w", p.Name, f.Name, err)
		}
		if err := c.eval(ctx, f.End, "end", &feature.End); err != nil {
			return nil, fmt.Errorf("in plasmid '%s', feature '%s': %w", p.Name, f.Name, err)
		}
		p.Features = append(p.Features, feature)
	}
	return p, nil
}

// cleanSequence drops FASTA header lines and all whitespace, so both a bare
// sequence and the contents of a FASTA file can be given.
func cleanSequence(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			continue
		}
		for _, r := range line {
			if r == ' ' || r == '\t' || r == '\r' {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
