package frontmatter

// Block is an insertion ordered mapping of frontmatter keys to values
type Block struct {
	keys   []string
	values map[string]Value
}

// Document is a parsed agent file
type Document struct {
	Frontmatter    *Block
	Body           string
	HasFrontmatter bool
}

// NewBlock creates an empty Block
func NewBlock() *Block {
	return &Block{values: make(map[string]Value)}
}

// Set stores value under key. An existing key keeps its position.
func (b *Block) Set(key string, value Value) {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// Get returns the value stored under key, or nil
func (b *Block) Get(key string) Value {
	if b == nil {
		return nil
	}
	return b.values[key]
}

// Has reports whether key is present
func (b *Block) Has(key string) bool {
	if b == nil {
		return false
	}
	_, ok := b.values[key]
	return ok
}

// Keys returns the keys in insertion order
func (b *Block) Keys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	return keys
}

// Len returns the number of keys
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// String returns the value under key when it is a Scalar
func (b *Block) String(key string) (string, bool) {
	s, ok := b.Get(key).(Scalar)
	return string(s), ok
}
