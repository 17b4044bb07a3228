package hcl

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/descriptor"
)

// StatementBlock is the type of every top-level block in a script.
const StatementBlock = "block"

// Format is the HCL implementation of config.Format.
type Format struct{}

// New creates a new HCL format.
func New() *Format {
	return &Format{}
}

// Load parses every file in paths and returns their statements in order.
func (f *Format) Load(ctx context.Context, paths ...string) (*descriptor.Recipe, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	parser := hclparse.NewParser()
	recipe := descriptor.NewRecipe()
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		blocks, diags := decodeFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}
		for _, inst := range blocks {
			recipe.Blocks.Push(inst)
		}
		logger.Debug("Loaded HCL recipe.", "path", path, "statements", len(blocks))
	}
	return recipe, nil
}

// Parse decodes a single HCL document held in memory. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*descriptor.Recipe, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	blocks, diags := decodeFile(file)
	if diags.HasErrors() {
		return nil, diags
	}
	return descriptor.NewRecipe(blocks...), nil
}

func decodeFile(file *hcl.File) ([]descriptor.Instance, hcl.Diagnostics) {
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported file syntax",
			Detail:   "Scripts must use the native HCL syntax.",
		}}
	}

	var diags hcl.Diagnostics
	for _, attr := range sortedAttributes(body.Attributes) {
		name := attr.Name
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected top-level attribute",
			Detail:   fmt.Sprintf("Attribute %q is not allowed here; a script holds only %q blocks.", name, StatementBlock),
			Subject:  attr.NameRange.Ptr(),
		})
	}

	var out []descriptor.Instance
	for _, blk := range body.Blocks {
		if blk.Type != StatementBlock {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected block type",
				Detail:   fmt.Sprintf("Blocks of type %q are not expected here; use %q.", blk.Type, StatementBlock),
				Subject:  blk.TypeRange.Ptr(),
			})
			continue
		}
		inst, instDiags := decodeInstance(blk, file.Bytes)
		diags = append(diags, instDiags...)
		if !instDiags.HasErrors() {
			out = append(out, inst)
		}
	}
	return out, diags
}

func decodeInstance(blk *hclsyntax.Block, src []byte) (descriptor.Instance, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if len(blk.Labels) != 1 {
		return descriptor.Instance{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing block source",
			Detail:   fmt.Sprintf("Block %q needs exactly one label naming its source, such as \"builtin:int\".", blk.Type),
			Subject:  blk.DefRange().Ptr(),
		}}
	}
	source, err := descriptor.ParseSource(blk.Labels[0])
	if err != nil {
		return descriptor.Instance{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid block source",
			Detail:   err.Error(),
			Subject:  blk.LabelRanges[0].Ptr(),
		}}
	}

	inst := descriptor.NewInstance(source)
	seen := make(map[string]hcl.Range)
	claim := func(name string, rng hcl.Range) bool {
		if name == descriptor.SourceField {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Reserved field name",
				Detail:   fmt.Sprintf("%q is reserved for the block source.", descriptor.SourceField),
				Subject:  rng.Ptr(),
			})
			return false
		}
		if prev, dup := seen[name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate field",
				Detail:   fmt.Sprintf("Field %q was already set at %s.", name, prev),
				Subject:  rng.Ptr(),
			})
			return false
		}
		seen[name] = rng
		return true
	}

	for _, attr := range sortedAttributes(blk.Body.Attributes) {
		name := attr.Name
		if !claim(name, attr.NameRange) {
			continue
		}
		v, vDiags := decodeLiteral(attr, src)
		diags = append(diags, vDiags...)
		if !vDiags.HasErrors() {
			inst.Content[name] = descriptor.SlotContent(descriptor.LiteralSlot(v))
		}
	}
	for _, child := range blk.Body.Blocks {
		if !claim(child.Type, child.TypeRange) {
			continue
		}
		sub, subDiags := decodeInstance(child, src)
		diags = append(diags, subDiags...)
		if !subDiags.HasErrors() {
			inst.Content[child.Type] = descriptor.SlotContent(descriptor.BlockSlot(sub))
		}
	}
	return inst, diags
}

// sortedAttributes returns attrs in the order they appear in the source.
func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SrcRange.Start.Byte < out[j].SrcRange.Start.Byte
	})
	return out
}

// isFloatLiteral reports whether the source text of a number literal marks
// it as a float.
func isFloatLiteral(text []byte) bool {
	return bytes.ContainsAny(text, ".eE")
}
