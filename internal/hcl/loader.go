package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/overhangs/internal/config"
	"github.com/specialistvlad/overhangs/internal/ctxlog"
	"github.com/specialistvlad/overhangs/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges their blocks into
// one model. Names must be unique per block type across all files, and at
// most one `settings` block may exist.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()
	declared := make(map[string]hcl.Range)
	var settings *hcl.Block

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(rootSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		c := newConverter(newEvalContext(filepath.Dir(file)))

		block, diags := FindUniqueBlock(content.Blocks, "settings")
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		if block != nil {
			if settings != nil {
				return nil, fmt.Errorf("failed to decode HCL file %s: duplicate settings block, first declared at %s", file, settings.DefRange)
			}
			settings = block
			if model.Settings, err = translateSettings(ctx, c, block); err != nil {
				return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
			}
		}

		for _, block := range content.Blocks {
			if block.Type == "settings" {
				continue
			}
			key := block.Type + "." + block.Labels[0]
			if first, dup := declared[key]; dup {
				return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, hcl.Diagnostics{duplicateLabel(block, first)})
			}
			declared[key] = block.DefRange

			if err := l.translate(ctx, c, block, model); err != nil {
				return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
			}
		}
	}

	logger.Debug("HCL loading complete.",
		"assemblies", len(model.Assemblies),
		"syntaxes", len(model.Syntaxes),
		"enzymes", len(model.Enzymes),
		"plasmids", len(model.Plasmids),
	)
	return model, nil
}

// translate merges one labelled top-level block into the model.
func (l *Loader) translate(ctx context.Context, c *converter, block *hcl.Block, model *config.Model) error {
	switch block.Type {
	case "assembly":
		a, err := translateAssembly(ctx, c, block)
		if err != nil {
			return err
		}
		model.Assemblies[a.Name] = a
	case "syntax":
		s, err := translateSyntax(ctx, c, block)
		if err != nil {
			return err
		}
		model.Syntaxes[s.Name] = s
	case "enzyme":
		e, err := translateEnzyme(ctx, c, block)
		if err != nil {
			return err
		}
		model.Enzymes[e.Name] = e
	case "plasmid":
		p, err := translatePlasmid(ctx, c, block)
		if err != nil {
			return err
		}
		model.Plasmids[p.Name] = p
	}
	return nil
}
