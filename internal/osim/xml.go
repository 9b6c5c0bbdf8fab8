package osim

import (
	"encoding/xml"
	"os"
	"strings"
)

// element is a generic XML node. OpenSim documents are machine-written and
// regular, so a plain recursive node round-trips them faithfully; comments
// are not preserved.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*element `xml:",any"`
}

func newElement(name string) *element {
	return &element{XMLName: xml.Name{Local: name}}
}

func leafElement(name, text string) *element {
	el := newElement(name)
	el.Text = text
	return el
}

func (e *element) attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (e *element) setAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name.Local == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// child returns the first child with the given local name.
func (e *element) child(name string) *element {
	for _, c := range e.Children {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}

// ensureChild returns the first child with the given local name, creating
// and appending it if absent.
func (e *element) ensureChild(name string) *element {
	if c := e.child(name); c != nil {
		return c
	}
	c := newElement(name)
	e.Children = append(e.Children, c)
	return c
}

func (e *element) append(children ...*element) *element {
	e.Children = append(e.Children, children...)
	return e
}

// normalize strips the indentation whitespace the decoder accumulates in
// interior nodes so the document re-indents cleanly on save.
func (e *element) normalize() {
	e.Text = strings.TrimSpace(e.Text)
	if len(e.Children) > 0 {
		e.Text = ""
	}
	for _, c := range e.Children {
		c.normalize()
	}
}

func parseDocument(path string) (*element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root := &element{}
	if err := xml.Unmarshal(data, root); err != nil {
		return nil, err
	}
	root.normalize()
	return root, nil
}

func writeDocument(path string, root *element) error {
	data, err := xml.MarshalIndent(root, "", "\t")
	if err != nil {
		return err
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	return os.WriteFile(path, out, 0644)
}
