package parser

import "io"

// Parser decodes a TVMaze JSON response body into display records.
type Parser[T any] interface {
	Parse(body io.Reader) ([]T, error)
}
