// FILE: strata/xml.go
package strata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NewXMLFile creates an XML file source.
//
// Element nesting maps to key hierarchy; attributes become child keys and
// element text becomes the element's own value. A "Name" attribute adds
// an extra path segment, and repeated sibling elements get zero-based
// ordinal segments:
//
//	<settings>
//	  <endpoint Name="primary" url="https://a"/>
//	  <retry>3</retry>
//	</settings>
//
// flattens to endpoint:primary:url=https://a and retry=3. XML namespaces
// are not supported.
func NewXMLFile(path string) *FileSource {
	return newFileSource(path, "XML", parseXML)
}

type xmlAttr struct {
	name  string
	value string
}

type xmlElement struct {
	name     string
	nameAttr string
	attrs    []xmlAttr
	text     string

	// children are grouped by sibling identity (element name plus Name
	// attribute) so repeated siblings can be indexed; order records the
	// first appearance of each group.
	children map[string][]*xmlElement
	order    []string
}

func newXMLElement(start xml.StartElement) (*xmlElement, error) {
	if start.Name.Space != "" {
		return nil, errors.New("XML namespaces are not supported")
	}

	e := &xmlElement{name: start.Name.Local, children: make(map[string][]*xmlElement)}
	for _, a := range start.Attr {
		if a.Name.Space != "" {
			if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
				continue
			}
			return nil, errors.New("XML namespaces are not supported")
		}
		if a.Name.Local == "xmlns" {
			continue
		}
		e.attrs = append(e.attrs, xmlAttr{name: a.Name.Local, value: a.Value})
		switch a.Name.Local {
		case "Name", "name", "NAME":
			e.nameAttr = a.Value
		}
	}
	return e, nil
}

func (e *xmlElement) siblingKey() string {
	key := strings.ToUpper(e.name)
	if e.nameAttr != "" {
		key = CombinePath(key, strings.ToUpper(e.nameAttr))
	}
	return key
}

func parseXML(content []byte) (map[string]entry, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var root *xmlElement
	var stack []*xmlElement

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem, err := newXMLElement(t)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = elem
			} else {
				parent := stack[len(stack)-1]
				key := elem.siblingKey()
				if _, seen := parent.children[key]; !seen {
					parent.order = append(parent.order, key)
				}
				parent.children[key] = append(parent.children[key], elem)
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" && len(stack) > 0 {
				stack[len(stack)-1].text = text
			}
		}
	}

	data := make(map[string]entry)
	if root == nil {
		return data, nil
	}

	var prefix []string
	if root.nameAttr != "" {
		prefix = append(prefix, root.nameAttr)
	}
	if err := flattenXMLElement(prefix, root, data); err != nil {
		return nil, err
	}
	return data, nil
}

func flattenXMLElement(prefix []string, e *xmlElement, data map[string]entry) error {
	for _, a := range e.attrs {
		if err := addXMLValue(append(prefix, a.name), a.value, data); err != nil {
			return err
		}
	}

	if e.text != "" {
		if err := addXMLValue(prefix, e.text, data); err != nil {
			return err
		}
	}

	for _, key := range e.order {
		group := e.children[key]
		for i, child := range group {
			childPrefix := append(prefix[:len(prefix):len(prefix)], child.name)
			if child.nameAttr != "" {
				childPrefix = append(childPrefix, child.nameAttr)
			}
			if len(group) > 1 {
				childPrefix = append(childPrefix, strconv.Itoa(i))
			}
			if err := flattenXMLElement(childPrefix, child, data); err != nil {
				return err
			}
		}
	}
	return nil
}

func addXMLValue(segments []string, value string, data map[string]entry) error {
	key := CombinePath(segments...)
	upper := strings.ToUpper(key)
	if dup, exists := data[upper]; exists {
		return fmt.Errorf("duplicate key %q", dup.key)
	}
	data[upper] = entry{key: key, value: value}
	return nil
}
