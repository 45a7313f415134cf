package adapter

import "encoding/json"

// JSON encodes receipt bodies and event payloads
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v any) ([]byte, error)
}

type stdJSON struct{}

func NewJSON() JSON {
	return stdJSON{}
}

func (stdJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
