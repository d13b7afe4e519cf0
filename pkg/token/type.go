package token

//go:generate go run github.com/dmarkham/enumer -type Type -trimprefix Type -transform lower -json -text -output type.gen.go

// Type limits what a token may be used for.
type Type int

const (
	TypeAuth Type = iota
	TypeStream
	TypePublish
)
