package descr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// HCL layout of a description:
//
//	descr   = "three steps"
//	inputs  = ["a"]
//	outputs = ["c"]
//
//	node "a" {
//	  work {
//	    descr = "first step"
//	    worker {
//	      class  = "linear"
//	      params = { k = 1, b = "$offset" }
//	    }
//	  }
//	}
//
//	node "c" {
//	  class  = "PackNode"
//	  inputs = ["a"]
//	}

type hclPlan struct {
	Descr   string     `hcl:"descr,optional"`
	Inputs  []string   `hcl:"inputs,optional"`
	Outputs []string   `hcl:"outputs,optional"`
	Nodes   []*hclNode `hcl:"node,block"`
}

type hclNode struct {
	ID     string   `hcl:"id,label"`
	Class  string   `hcl:"class,optional"`
	Index  *int     `hcl:"index,optional"`
	Inputs []string `hcl:"inputs,optional"`
	Result string   `hcl:"result,optional"`
	Work   *hclWork `hcl:"work,block"`
}

type hclWork struct {
	Descr  string     `hcl:"descr,optional"`
	Worker *hclWorker `hcl:"worker,block"`
}

type hclWorker struct {
	Class    string         `hcl:"class,optional"`
	Function string         `hcl:"function,optional"`
	Params   hcl.Expression `hcl:"params,optional"`
}

// FromHCL decodes an HCL description. filename is only used in diagnostics.
// Numbers in params decode as float64.
func FromHCL(data []byte, filename string) (*Plan, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, verifyErr(ErrSchema, "", "parse hcl: %s", diags.Error())
	}

	var raw hclPlan
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, verifyErr(ErrSchema, "", "decode hcl: %s", diags.Error())
	}

	p := &Plan{
		Descr:   raw.Descr,
		Inputs:  raw.Inputs,
		Outputs: raw.Outputs,
		Nodes:   make([]Node, 0, len(raw.Nodes)),
	}
	for i, rn := range raw.Nodes {
		n := Node{
			ID:     rn.ID,
			Class:  rn.Class,
			Index:  rn.Index,
			Inputs: rn.Inputs,
			Result: rn.Result,
		}
		if rn.Work != nil {
			work, err := rn.Work.convert()
			if err != nil {
				return nil, verifyErr(ErrSchema, nodePath(i, "work.worker.params"), "%v", err)
			}
			n.Work = work
		}
		p.Nodes = append(p.Nodes, n)
	}
	return p, nil
}

func (w *hclWork) convert() (*Work, error) {
	work := &Work{Descr: w.Descr}
	if w.Worker == nil {
		return work, nil
	}
	work.Worker = &Worker{
		Class:    w.Worker.Class,
		Function: w.Worker.Function,
	}
	if w.Worker.Params == nil {
		return work, nil
	}

	val, diags := w.Worker.Params.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluate params: %s", diags.Error())
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, err
	}
	if native == nil {
		return work, nil
	}
	params, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("params must be an object, got %s", val.Type().FriendlyName())
	}
	work.Worker.Params = params
	return work, nil
}

// ctyToNative converts a cty value to plain Go values:
// string, float64, bool, []any and map[string]any.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, native)
		}
		return list, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
