package osm

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// xmlReader streams OSM XML (the OSM Wiki's v0.6 schema) element by
// element, emitting one Feature per closed top-level <node>/<way>/
// <relation>. Unknown elements are ignored.
type xmlReader struct {
	dec *xml.Decoder
}

func newXMLReader(r io.Reader) *xmlReader {
	return &xmlReader{dec: xml.NewDecoder(r)}
}

// Next returns the next feature, or io.EOF when the document ends.
func (x *xmlReader) Next() (Feature, error) {
	for {
		tok, err := x.dec.Token()
		if err == io.EOF {
			return Feature{}, io.EOF
		}
		if err != nil {
			return Feature{}, fmt.Errorf("%w: %v", ErrIO, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "node":
			n, err := x.decodeNode(start)
			if err != nil {
				return Feature{}, err
			}
			if n == nil {
				continue
			}

			return Feature{Node: n}, nil
		case "way":
			w, err := x.decodeWay(start)
			if err != nil {
				return Feature{}, err
			}
			if w == nil {
				continue
			}

			return Feature{Way: w}, nil
		case "relation":
			rel, err := x.decodeRelation(start)
			if err != nil {
				return Feature{}, err
			}
			if rel == nil {
				continue
			}

			return Feature{Relation: rel}, nil
		default:
			// Unknown top-level element (e.g. <bounds>, <osm>): ignored.
		}
	}
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

func attrInt64(start xml.StartElement, name string) (int64, error) {
	v, ok := attr(start, name)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s attribute", ErrMalformedFeature, name)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s attribute %q: %v", ErrMalformedFeature, name, v, err)
	}

	return n, nil
}

func attrFloat64(start xml.StartElement, name string) (float64, error) {
	v, ok := attr(start, name)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s attribute", ErrMalformedFeature, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s attribute %q: %v", ErrMalformedFeature, name, v, err)
	}

	return f, nil
}

// decodeNode consumes a <node ...>...</node> (or self-closed) element,
// accumulating any <tag> children.
func (x *xmlReader) decodeNode(start xml.StartElement) (*Node, error) {
	id, err := attrInt64(start, "id")
	if err != nil {
		return nil, err
	}
	lat, err := attrFloat64(start, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := attrFloat64(start, "lon")
	if err != nil {
		return nil, err
	}
	n := &Node{ID: id, Lat: lat, Lon: lon}

	return n, x.consumeChildren(start.Name, func(child xml.StartElement) error {
		if child.Name.Local == "tag" {
			k, v := tagAttrs(child)
			if n.Tags == nil {
				n.Tags = make(map[string]string)
			}
			n.Tags[k] = v
		}

		return nil
	})
}

func (x *xmlReader) decodeWay(start xml.StartElement) (*Way, error) {
	id, err := attrInt64(start, "id")
	if err != nil {
		return nil, err
	}
	w := &Way{ID: id}

	return w, x.consumeChildren(start.Name, func(child xml.StartElement) error {
		switch child.Name.Local {
		case "nd":
			ref, err := attrInt64(child, "ref")
			if err != nil {
				return err
			}
			w.Nodes = append(w.Nodes, ref)
		case "tag":
			k, v := tagAttrs(child)
			if w.Tags == nil {
				w.Tags = make(map[string]string)
			}
			w.Tags[k] = v
		}

		return nil
	})
}

func (x *xmlReader) decodeRelation(start xml.StartElement) (*Relation, error) {
	id, err := attrInt64(start, "id")
	if err != nil {
		return nil, err
	}
	rel := &Relation{ID: id}

	return rel, x.consumeChildren(start.Name, func(child xml.StartElement) error {
		switch child.Name.Local {
		case "member":
			typStr, _ := attr(child, "type")
			ref, err := attrInt64(child, "ref")
			if err != nil {
				return err
			}
			role, _ := attr(child, "role")
			rel.Members = append(rel.Members, Member{Type: parseMemberType(typStr), Ref: ref, Role: role})
		case "tag":
			k, v := tagAttrs(child)
			if rel.Tags == nil {
				rel.Tags = make(map[string]string)
			}
			rel.Tags[k] = v
		}

		return nil
	})
}

func parseMemberType(s string) MemberType {
	switch s {
	case "way":
		return MemberWay
	case "relation":
		return MemberRelation
	default:
		return MemberNode
	}
}

func tagAttrs(tag xml.StartElement) (string, string) {
	k, _ := attr(tag, "k")
	v, _ := attr(tag, "v")

	return k, v
}

// consumeChildren reads tokens until the matching end element for name,
// invoking fn for each child start element (not recursing into further
// descendants, which the OSM XML schema never nests beyond one level for
// tag/nd/member).
func (x *xmlReader) consumeChildren(name xml.Name, fn func(xml.StartElement) error) error {
	depth := 0
	for {
		tok, err := x.dec.Token()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("%w: unexpected end of document inside <%s>", ErrMalformedFile, name.Local)
			}

			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if err := fn(t); err != nil {
					return err
				}
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}
