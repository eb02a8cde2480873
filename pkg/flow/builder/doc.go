/*
Package builder turns plan descriptions into live plans.

Workers are looked up by name in a workers.Registry. Class workers receive
the params of their description; any string param of the form "$name" is
replaced by the value of name in the parameter map given to Build:

	reg := workers.NewRegistry()
	reg.RegisterClass("linear", newLinear)

	plan, err := builder.FromFile("plan.yaml", reg, map[string]any{
	    "offset": 2.5,
	})
	if err != nil {
	    return err
	}
	results, err := plan.Run(ctx, []any{samples})

The replacement keeps the type of the parameter value, so "$taps" may stand
for a whole list. Placeholders nested in maps and lists are replaced too.
Write "$$" to start a literal string with a dollar sign.

Build verifies the description first and never returns a partial plan.
*/
package builder
