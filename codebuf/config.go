package codebuf

// MaxPoolCount is the largest constant_pool_count a class file can declare.
const MaxPoolCount = 65535

// Config controls code assembly.
type Config struct {
	// InitialCapacity preallocates the code buffer.
	InitialCapacity int

	// PoolLimit caps constant_pool_count. Entries past the limit fail with
	// a pool_overflow error.
	PoolLimit int

	// PreferWide emits ldc_w for single-word literals even when the pool
	// index fits in one byte.
	PreferWide bool
}

// DefaultConfig returns the configuration used by New when given a zero Config.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: 64,
		PoolLimit:       MaxPoolCount,
	}
}

// WithInitialCapacity sets the preallocated buffer size.
func (c Config) WithInitialCapacity(n int) Config {
	c.InitialCapacity = n
	return c
}

// WithPoolLimit sets the constant pool limit.
func (c Config) WithPoolLimit(n int) Config {
	c.PoolLimit = n
	return c
}

// WithPreferWide forces ldc_w for single-word literals.
func (c Config) WithPreferWide(wide bool) Config {
	c.PreferWide = wide
	return c
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.InitialCapacity <= 0 {
		c.InitialCapacity = def.InitialCapacity
	}
	if c.PoolLimit <= 0 || c.PoolLimit > MaxPoolCount {
		c.PoolLimit = def.PoolLimit
	}
	return c
}
