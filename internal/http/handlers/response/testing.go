package response

import (
	"fmt"
	"io"
)

type RenderedPage struct {
	Name string
	Data interface{}
}

type FakeRenderer struct {
	Rendered    []RenderedPage
	ReturnError error
}

func NewFakeRenderer() *FakeRenderer {
	return &FakeRenderer{}
}

func (r *FakeRenderer) Render(w io.Writer, name string, data interface{}) error {
	if r.ReturnError != nil {
		return r.ReturnError
	}
	r.Rendered = append(r.Rendered, RenderedPage{Name: name, Data: data})
	_, err := fmt.Fprintf(w, "<%s>", name)
	return err
}

// Last returns the most recently rendered page or an empty one.
func (r *FakeRenderer) Last() RenderedPage {
	if len(r.Rendered) == 0 {
		return RenderedPage{}
	}
	return r.Rendered[len(r.Rendered)-1]
}
