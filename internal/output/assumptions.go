package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Estimates only: credits, phase-outs, AMT and residency rules are ignored",
	"Deductions reduce the progressive schedule only; contributions use gross income",
	"Contribution caps limit the income a component applies to",
	"Marginal rate ignores contribution caps",
	"Tax tables are held constant (no inflation indexing)",
}
