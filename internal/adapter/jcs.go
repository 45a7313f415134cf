package adapter

import "github.com/gowebpki/jcs"

// JCS canonicalizes JSON per RFC 8785 so sale receipts hash the same on every node
//
//go:generate mockgen -source=jcs.go -destination=../mocks/jcs.go -package=mocks -mock_names=JCS=MockJCS
type JCS interface {
	Transform(data []byte) ([]byte, error)
}

type rfc8785 struct{}

func NewJCS() JCS {
	return rfc8785{}
}

func (rfc8785) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}
