package category

import "strings"

type ID int64

type Name string

func NewName(raw string) Name {
	return Name(strings.TrimSpace(raw))
}

type Category struct {
	ID   ID
	Name Name
}
