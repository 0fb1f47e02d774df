package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/overhangs/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// converter evaluates attribute expressions of one file and binds the
// results to Go values.
type converter struct {
	evalCtx *hcl.EvalContext
}

func newConverter(evalCtx *hcl.EvalContext) *converter {
	return &converter{evalCtx: evalCtx}
}

// eval evaluates a required attribute into target.
func (c *converter) eval(ctx context.Context, expr hcl.Expression, name string, target any) error {
	if !isExprDefined(expr) {
		return fmt.Errorf("missing required argument %q", name)
	}
	return c.evalOptional(ctx, expr, name, target)
}

// evalOptional evaluates an attribute into target if it was written in the
// source, leaving target untouched otherwise.
func (c *converter) evalOptional(ctx context.Context, expr hcl.Expression, name string, target any) error {
	if !isExprDefined(expr) {
		return nil
	}
	val, diags := expr.Value(c.evalCtx)
	if diags.HasErrors() {
		return diags
	}
	if val.IsNull() {
		return fmt.Errorf("argument %q must not be null", name)
	}
	if err := c.decode(ctx, val, target); err != nil {
		return fmt.Errorf("failed to decode argument '%s': %w", name, err)
	}
	return nil
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}

// isExprDefined checks if an HCL expression was actually present in the source
// code. The decoder populates omitted optional attributes with zero-width
// placeholder expressions, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
