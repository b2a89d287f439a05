package command

// Context carries the caller's session state for eligibility checks.
type Context struct {
	Authenticated bool
	HasProfile    bool
	Credits       int
}

// Eligible reports whether the command may be shown under ctx.
// Visibility is all-or-nothing: a command either passes every gate or
// is hidden entirely.
func (c Command) Eligible(ctx Context) bool {
	if c.RequiresAuth && !ctx.Authenticated {
		return false
	}
	if c.RequiresProfile && !ctx.HasProfile {
		return false
	}
	if c.CreditCost > 0 && c.CreditCost > ctx.Credits {
		return false
	}
	return true
}

// Filter returns the commands eligible under ctx, preserving order.
// It must run before scoring so ineligible commands never surface no
// matter how well they match textually.
func Filter(commands []Command, ctx Context) []Command {
	out := make([]Command, 0, len(commands))
	for _, cmd := range commands {
		if cmd.Eligible(ctx) {
			out = append(out, cmd)
		}
	}
	return out
}
