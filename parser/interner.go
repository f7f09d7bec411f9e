package parser

// Interner implements string interning to reduce memory usage.
//
// Many strings repeat throughout a source file: identifiers bound once and
// referenced many times, module paths, operator spellings. By maintaining a
// pool of canonical strings we reuse the same string instance for every
// occurrence, cutting down on allocations during parsing.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of the string.
// If the string is already in the pool, returns the existing instance.
// Otherwise, adds it to the pool and returns it.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternBytes converts a byte slice to a string and interns it.
// This is the common case when working with tokens from the lexer.
func (i *Interner) InternBytes(b []byte) string {
	// The temporary string used for the map lookup is optimized away by the
	// compiler in the hit case, so only misses allocate.
	s := string(b)
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// Size returns the number of unique strings in the intern pool.
// Useful for diagnostics and testing.
func (i *Interner) Size() int {
	return len(i.pool)
}

// Reset clears the intern pool. Typically the pool is kept across files to
// maximize interning efficiency, but it can be dropped between batches to
// free memory.
func (i *Interner) Reset() {
	i.pool = make(map[string]string)
}
