package glintc

// AnalyzerConfig holds analyzer-tunable knobs, modeled directly on the
// teacher's `Config map[string]*cfgVal` (config.go): a typed map of
// named settings with accessor methods, seeded with defaults by
// NewAnalyzerConfig.
type AnalyzerConfig map[string]*cfgVal

type cfgValType int

const (
	cfgUndefined cfgValType = iota
	cfgBool
	cfgInt
)

type cfgVal struct {
	typ    cfgValType
	asBool bool
	asInt  int
}

// NewAnalyzerConfig returns the default configuration. The analyzer
// reads analysis.warn_on_unused_private and
// analysis.warn_on_inexhaustive_match (both on; an inexhaustive match
// is only ever a warning, per §9). analysis.strict_ffi,
// generics.cache_enabled and analysis.max_diagnostics are stored but
// no analyzer pass reads them: FFI checks always run, instantiations
// are always cached, and the diagnostic list has no cap.
func NewAnalyzerConfig() AnalyzerConfig {
	c := make(AnalyzerConfig)
	c.SetBool("analysis.strict_ffi", true)
	c.SetBool("analysis.warn_on_inexhaustive_match", true)
	c.SetBool("analysis.warn_on_unused_private", true)
	c.SetBool("generics.cache_enabled", true)
	c.SetInt("analysis.max_diagnostics", 0) // 0 == unbounded
	return c
}

func (c AnalyzerConfig) SetBool(path string, v bool) { c[path] = &cfgVal{typ: cfgBool, asBool: v} }
func (c AnalyzerConfig) SetInt(path string, v int)   { c[path] = &cfgVal{typ: cfgInt, asInt: v} }

func (c AnalyzerConfig) GetBool(path string) bool {
	if v, ok := c[path]; ok && v.typ == cfgBool {
		return v.asBool
	}
	return false
}

func (c AnalyzerConfig) GetInt(path string) int {
	if v, ok := c[path]; ok && v.typ == cfgInt {
		return v.asInt
	}
	return 0
}
