package isa

const (
	r   = Register
	v   = Value
	d   = Device
	enm = Constant | AllowUnknownSymbol
	abs = Value
	rel = Value | BranchRelative
)

// Default returns a fresh copy of the built-in IC10 catalog.
func Default() Table {
	t := make(Table)

	t.Add("alias", NoSubstitution|AllowUnknownSymbol, NoSubstitution|Device|Register)

	for _, m := range []string{"yield", "hcf"} {
		t.Add(m)
	}
	t.Add("sleep", v)
	t.Add("move", r, v)

	// Arithmetic
	for _, m := range []string{"abs", "acos", "asin", "atan", "ceil", "cos", "exp", "floor", "log", "round", "sin", "sqrt", "tan", "trunc", "not"} {
		t.Add(m, r, v)
	}
	for _, m := range []string{"add", "sub", "mul", "div", "mod", "max", "min", "atan2", "pow",
		"and", "or", "xor", "nor", "sla", "sll", "sra", "srl"} {
		t.Add(m, r, v, v)
	}
	t.Add("lerp", r, v, v, v)
	t.Add("ext", r, v, v, v)
	t.Add("ins", r, v, v, v)
	t.Add("rand", r)

	// Select and set
	t.Add("select", r, v, v, v)
	for _, m := range []string{"seq", "sne", "sgt", "sge", "slt", "sle"} {
		t.Add(m, r, v, v)
		t.Add(m+"z", r, v)
	}
	t.Add("sap", r, v, v, v)
	t.Add("sna", r, v, v, v)
	t.Add("sapz", r, v, v)
	t.Add("snaz", r, v, v)
	t.Add("snan", r, v)
	t.Add("snanz", r, v)
	t.Add("sdse", r, d)
	t.Add("sdns", r, d)

	// Branches
	for _, cond := range []string{"eq", "ne", "gt", "ge", "lt", "le"} {
		t.Add("b"+cond, v, v, abs)
		t.Add("b"+cond+"al", v, v, abs)
		t.Add("b"+cond+"z", v, abs)
		t.Add("b"+cond+"zal", v, abs)
		t.Add("br"+cond, v, v, rel)
		t.Add("br"+cond+"z", v, rel)
	}
	for _, cond := range []string{"ap", "na"} {
		t.Add("b"+cond, v, v, v, abs)
		t.Add("b"+cond+"al", v, v, v, abs)
		t.Add("b"+cond+"z", v, v, abs)
		t.Add("b"+cond+"zal", v, v, abs)
		t.Add("br"+cond, v, v, v, rel)
		t.Add("br"+cond+"z", v, v, rel)
	}
	t.Add("bnan", v, abs)
	t.Add("brnan", v, rel)
	for _, m := range []string{"bdse", "bdns", "bdseal", "bdnsal"} {
		t.Add(m, d, abs)
	}
	t.Add("brdse", d, rel)
	t.Add("brdns", d, rel)
	t.Add("j", abs)
	t.Add("jal", abs)
	t.Add("jr", rel)

	// Stack
	t.Add("push", v)
	t.Add("pop", r)
	t.Add("peek", r)
	t.Add("poke", v, v)
	t.Add("get", r, d, v)
	t.Add("getd", r, v, v)
	t.Add("put", d, v, v)
	t.Add("putd", v, v, v)
	t.Add("clr", d)
	t.Add("clrd", v)

	// Device I/O
	t.Add("l", r, d, enm)
	t.Add("s", d, enm, v)
	t.Add("ls", r, d, v, enm)
	t.Add("ss", d, v, enm, v)
	t.Add("lr", r, d, enm, v)
	t.Add("ld", r, v, enm)
	t.Add("sd", v, enm, v)
	t.Add("lb", r, v, enm, enm)
	t.Add("lbn", r, v, v, enm, enm)
	t.Add("lbs", r, v, v, enm, enm)
	t.Add("lbns", r, v, v, v, enm, enm)
	t.Add("sb", v, enm, v)
	t.Add("sbn", v, v, enm, v)
	t.Add("sbs", v, v, enm, v)
	t.Add("rmap", r, d, v)

	return t
}
