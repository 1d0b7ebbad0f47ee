package addressgen

import "regexp"

// Formatter maps network names to the rule or generator that shapes their
// addresses. A Formatter is never modified after creation, so it can be
// shared between goroutines.
type Formatter struct {
	rules      map[string]Rule
	generators map[string]Generator
	fallback   Rule
}

// NewFormatter returns a Formatter loaded with the built-in network table.
func NewFormatter() *Formatter {
	return &Formatter{
		rules:      copyRules(defaultRules),
		generators: copyGenerators(defaultGenerators),
		fallback:   EVMRule,
	}
}

// WithRule returns a copy of the formatter where network is shaped by rule.
func (f *Formatter) WithRule(network string, rule Rule) *Formatter {
	cp := f.clone()
	delete(cp.generators, network)
	cp.rules[network] = rule
	return cp
}

// WithGenerator returns a copy of the formatter where network is shaped by
// gen.
func (f *Formatter) WithGenerator(network string, gen Generator) *Formatter {
	cp := f.clone()
	delete(cp.rules, network)
	cp.generators[network] = gen
	return cp
}

// Format returns the address for network drawing randomness only from rng.
// Unknown networks get an EVM style address.
func (f *Formatter) Format(network string, rng Rand) string {
	if gen, ok := f.generators[network]; ok {
		return gen.Generate(rng)
	}
	return f.rule(network).Format(rng)
}

// Shape returns the regular expression matching any address Format produces
// for network.
func (f *Formatter) Shape(network string) *regexp.Regexp {
	if gen, ok := f.generators[network]; ok {
		return gen.Shape
	}
	return f.rule(network).Shape()
}

// IsKnown returns whether the network has a dedicated entry in the table.
func (f *Formatter) IsKnown(network string) bool {
	if _, ok := f.generators[network]; ok {
		return true
	}
	_, ok := f.rules[network]
	return ok
}

// Networks returns the number of networks with a dedicated entry.
func (f *Formatter) Networks() int {
	return len(f.rules) + len(f.generators)
}

func (f *Formatter) rule(network string) Rule {
	if rule, ok := f.rules[network]; ok {
		return rule
	}
	return f.fallback
}

func (f *Formatter) clone() *Formatter {
	return &Formatter{
		rules:      copyRules(f.rules),
		generators: copyGenerators(f.generators),
		fallback:   f.fallback,
	}
}

func copyRules(src map[string]Rule) map[string]Rule {
	dst := make(map[string]Rule, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyGenerators(src map[string]Generator) map[string]Generator {
	dst := make(map[string]Generator, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
