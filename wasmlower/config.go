package wasmlower

import "github.com/wippyai/stackgen/category"

// Config describes the signature of the lowered function.
type Config struct {
	// Export is the name the function is exported under.
	Export string

	// Params are the function parameters. They occupy JVM slots from 0,
	// two slots for long and double.
	Params []category.Category

	// Result is the return category. Void means no result.
	Result category.Category
}

// DefaultConfig returns a config for a parameterless void function exported as "run".
func DefaultConfig() Config {
	return Config{Export: "run", Result: category.Void}
}

// WithExport sets the export name.
func (c Config) WithExport(name string) Config {
	c.Export = name
	return c
}

// WithParams sets the parameter categories.
func (c Config) WithParams(params ...category.Category) Config {
	c.Params = append([]category.Category(nil), params...)
	return c
}

// WithResult sets the result category.
func (c Config) WithResult(r category.Category) Config {
	c.Result = r
	return c
}
