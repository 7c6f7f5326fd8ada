package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pdrpinto/gridsearch"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclScenarioFile is the top-level structure of a scenario file for decoding.
type hclScenarioFile struct {
	Scenarios []*hclScenario `hcl:"scenario,block"`
}

// hclScenario decodes rows and cols directly; the coordinate attributes are
// kept as expressions and evaluated once rows and cols are known, so they
// may refer to them:
//
//	scenario "corner" {
//	  rows    = 5
//	  cols    = 5
//	  start   = [0, 0]
//	  goal    = [rows - 1, cols - 1]
//	  blocked = [for c in range(0, cols - 1) : [2, c]]
//	}
type hclScenario struct {
	Name    string         `hcl:"name,label"`
	Rows    int            `hcl:"rows"`
	Cols    int            `hcl:"cols"`
	Start   hcl.Expression `hcl:"start"`
	Goal    hcl.Expression `hcl:"goal"`
	Blocked hcl.Expression `hcl:"blocked,optional"`
}

var (
	positionType     = cty.List(cty.Number)
	positionListType = cty.List(positionType)
)

func evalContext(rows, cols int) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"rows": cty.NumberIntVal(int64(rows)),
			"cols": cty.NumberIntVal(int64(cols)),
		},
		Functions: map[string]function.Function{
			"range":  stdlib.RangeFunc,
			"concat": stdlib.ConcatFunc,
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
		},
	}
}

// ParseHCL parses every scenario block in src. filename is used in diagnostics.
func ParseHCL(src []byte, filename string) ([]Scenario, error) {
	return parseHCL(hclparse.NewParser(), src, filename)
}

func parseHCL(parser *hclparse.Parser, src []byte, filename string) ([]Scenario, error) {
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsedFile hclScenarioFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	scenarios := make([]Scenario, 0, len(parsedFile.Scenarios))
	for _, block := range parsedFile.Scenarios {
		s, err := block.toScenario()
		if err != nil {
			return nil, fmt.Errorf("error in scenario %q in file %s: %w", block.Name, filename, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (b *hclScenario) toScenario() (Scenario, error) {
	ctx := evalContext(b.Rows, b.Cols)
	s := Scenario{Name: b.Name, Rows: b.Rows, Cols: b.Cols}

	var err error
	if s.Start, err = evalPosition(ctx, "start", b.Start); err != nil {
		return Scenario{}, err
	}
	if s.Goal, err = evalPosition(ctx, "goal", b.Goal); err != nil {
		return Scenario{}, err
	}
	if s.Blocked, err = evalPositionList(ctx, "blocked", b.Blocked); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

func evalPosition(ctx *hcl.EvalContext, field string, expr hcl.Expression) (gridsearch.Position, error) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return gridsearch.Position{}, fmt.Errorf("%s: %w", field, diags)
	}
	val, err := convert.Convert(val, positionType)
	if err != nil {
		return gridsearch.Position{}, fmt.Errorf("%s: %w", field, err)
	}
	var ints []int
	if err := gocty.FromCtyValue(val, &ints); err != nil {
		return gridsearch.Position{}, fmt.Errorf("%s: %w", field, err)
	}
	return positionFromInts(field, ints)
}

func evalPositionList(ctx *hcl.EvalContext, field string, expr hcl.Expression) ([]gridsearch.Position, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", field, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	val, err := convert.Convert(val, positionListType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	var raw [][]int
	if err := gocty.FromCtyValue(val, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	out := make([]gridsearch.Position, 0, len(raw))
	for i, ints := range raw {
		p, err := positionFromInts(fmt.Sprintf("%s[%d]", field, i), ints)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
