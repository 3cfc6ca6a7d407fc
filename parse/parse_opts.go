package parse

type parseOpts struct {
	filename string
}

type ParseOption func(*parseOpts)

// Filename names the input in parse error messages.
func Filename(name string) ParseOption {
	return func(po *parseOpts) { po.filename = name }
}
