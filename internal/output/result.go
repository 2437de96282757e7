package output

// Chunk holds the bytes drained from a single port, plus the sequencing
// metadata used when several ports are dumped concurrently.
type Chunk struct {
	Path   string
	SeqNum int
	Data   []byte
	Err    error
}

// HasData returns true if this chunk carries at least one byte.
func (c *Chunk) HasData() bool {
	return len(c.Data) > 0
}
