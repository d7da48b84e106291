// Package constraints holds type constraints shared by the generic grammar helpers.
package constraints

// Byteseq is satisfied by string and byte slice types, so URI components
// can be escaped and decoded without converting between the two.
type Byteseq interface {
	~string | ~[]byte
}
