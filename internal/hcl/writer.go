package hcl

import (
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Write renders recipe as an HCL script that Load reads back unchanged.
// Fields are written in lexicographic order, literals before nested blocks.
func (f *Format) Write(recipe *descriptor.Recipe) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	root := file.Body()
	if recipe == nil || recipe.Blocks == nil {
		return file.Bytes(), nil
	}
	for i, inst := range recipe.Blocks.Snapshot() {
		if i > 0 {
			root.AppendNewline()
		}
		blk := root.AppendNewBlock(StatementBlock, []string{inst.Source.String()})
		if err := writeFields(blk.Body(), inst); err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return hclwrite.Format(file.Bytes()), nil
}

func writeFields(body *hclwrite.Body, inst descriptor.Instance) error {
	names := make([]string, 0, len(inst.Content))
	for name := range inst.Content {
		if name == descriptor.SourceField {
			return fmt.Errorf("block %s: field name %q is reserved", inst.Source, name)
		}
		if !hclsyntax.ValidIdentifier(name) {
			return fmt.Errorf("block %s: field name %q is not a valid HCL identifier", inst.Source, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var nested []string
	for _, name := range names {
		slot := inst.Content[name].Slot
		if slot == nil {
			return fmt.Errorf("block %s: field %q has no content", inst.Source, name)
		}
		if slot.IsBlock() {
			nested = append(nested, name)
			continue
		}
		toks, err := literalTokens(slot.Literal)
		if err != nil {
			return fmt.Errorf("block %s, field %q: %w", inst.Source, name, err)
		}
		body.SetAttributeRaw(name, toks)
	}
	for _, name := range nested {
		child := *inst.Content[name].Slot.Block
		blk := body.AppendNewBlock(name, []string{child.Source.String()})
		if err := writeFields(blk.Body(), child); err != nil {
			return err
		}
	}
	return nil
}

// literalTokens renders v so that it decodes back to the same base type.
// Floats always carry a decimal point or an exponent.
func literalTokens(v value.Value) (hclwrite.Tokens, error) {
	if f, ok := v.AsFloat(); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%s cannot be written as HCL", v)
		}
		return hclwrite.Tokens{{Type: hclsyntax.TokenNumberLit, Bytes: []byte(value.FormatFloat(f))}}, nil
	}
	return hclwrite.TokensForValue(value.ToCty(v)), nil
}
