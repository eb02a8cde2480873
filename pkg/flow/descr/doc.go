/*
Package descr holds declarative plan descriptions and checks them.

A description lists nodes by id, the class of each node, its work and its
input ids, plus the plan's input and output ids:

	descr: three-step plan
	nodes:
	  - id: a
	    work:
	      descr: first step
	      worker:
	        class: linear
	        params: {k: 1, b: "$offset"}
	  - id: b
	    inputs: [a]
	    work:
	      worker:
	        function: abs
	  - id: d
	    class: PackNode
	    inputs: [a, b]
	inputs: [a]
	outputs: [d]

The same structure can be written in JSON, YAML, TOML or HCL; FromFile picks
the decoder from the file extension. Decoding is strict, so a misspelled key
is an error rather than a silently ignored field.

Verify performs the semantic checks (unique ids, known references, class
consistency) and reports the first violation as a *VerifyError:

	d, err := descr.FromFile("plan.yaml")
	if err != nil {
	    return err
	}
	if err := descr.Verify(d); err != nil {
	    var verr *descr.VerifyError
	    if errors.As(err, &verr) {
	        log.Printf("at %s: %s", verr.Path, verr.Message)
	    }
	    return err
	}

Building a live plan from a description is the job of package builder.
*/
package descr
