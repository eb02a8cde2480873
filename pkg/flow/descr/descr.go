package descr

// Plan describes a plan declaratively.
//
// Node ids are local to the description. Inputs and Outputs list node ids
// in call order; Inputs may be empty for plans that are only wired here and
// completed by the caller.
type Plan struct {
	Descr   string   `json:"descr,omitempty" yaml:"descr,omitempty" toml:"descr,omitempty"`
	Nodes   []Node   `json:"nodes" yaml:"nodes" toml:"nodes"`
	Inputs  []string `json:"inputs,omitempty" yaml:"inputs,omitempty" toml:"inputs,omitempty"`
	Outputs []string `json:"outputs" yaml:"outputs" toml:"outputs"`
}

// Node describes one node of a plan.
// An empty Class means WorkNode.
type Node struct {
	ID     string   `json:"id" yaml:"id" toml:"id"`
	Class  string   `json:"class,omitempty" yaml:"class,omitempty" toml:"class,omitempty"`
	Work   *Work    `json:"work,omitempty" yaml:"work,omitempty" toml:"work,omitempty"`
	Index  *int     `json:"index,omitempty" yaml:"index,omitempty" toml:"index,omitempty"`
	Inputs []string `json:"inputs,omitempty" yaml:"inputs,omitempty" toml:"inputs,omitempty"`
	Result string   `json:"result,omitempty" yaml:"result,omitempty" toml:"result,omitempty"`
}

// Work describes the work of a WorkNode or MapNode.
type Work struct {
	Descr  string  `json:"descr,omitempty" yaml:"descr,omitempty" toml:"descr,omitempty"`
	Worker *Worker `json:"worker" yaml:"worker" toml:"worker"`
}

// Worker names the callable of a Work.
// Exactly one of Class and Function is set. Params are passed to class
// factories; string values of the form "$name" are placeholders filled in
// when the plan is built.
type Worker struct {
	Class    string         `json:"class,omitempty" yaml:"class,omitempty" toml:"class,omitempty"`
	Function string         `json:"function,omitempty" yaml:"function,omitempty" toml:"function,omitempty"`
	Params   map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
}

// Name returns the class or function name.
func (w *Worker) Name() string {
	if w.Class != "" {
		return w.Class
	}
	return w.Function
}

// Node returns the node with id, or nil.
func (p *Plan) Node(id string) *Node {
	for i := range p.Nodes {
		if p.Nodes[i].ID == id {
			return &p.Nodes[i]
		}
	}
	return nil
}
