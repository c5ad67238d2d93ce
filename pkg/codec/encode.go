package codec

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/getyouridx/pychargify/pkg/entity"
)

// encodeIgnored lists field tags that never serialize: the identifier is
// part of the request path, not the body.
var encodeIgnored = map[string]bool{"id": true}

// Encode renders r as an element tree rooted at its node name. Nested
// entities become child subtrees under their own node names; every other
// declared field becomes a child element holding its text representation.
// Timestamps carry a type="datetime" attribute with RFC 3339 text, the same
// shape the server emits, so encoded documents decode back losslessly.
func Encode(r entity.Resource) *etree.Element {
	root := etree.NewElement(r.NodeName())
	v := reflect.ValueOf(r).Elem()
	t := v.Type()
	nested := r.AttributeTypes()

	for i := 0; i < t.NumField(); i++ {
		tag := xmlTag(t.Field(i))
		if tag == "" || encodeIgnored[tag] {
			continue
		}
		fv := v.Field(i)

		if _, ok := nested[tag]; ok {
			if fv.Kind() == reflect.Pointer && !fv.IsNil() {
				root.AddChild(Encode(fv.Interface().(entity.Resource)))
			}
			continue
		}

		child := root.CreateElement(tag)
		switch fv.Kind() {
		case reflect.String:
			child.SetText(fv.String())
		case reflect.Int, reflect.Int64:
			child.SetText(strconv.FormatInt(fv.Int(), 10))
		case reflect.Struct:
			if ts, ok := fv.Interface().(time.Time); ok {
				child.CreateAttr("type", "datetime")
				if !ts.IsZero() {
					child.SetText(ts.Format(time.RFC3339))
				}
			}
		}
	}
	return root
}

// EncodeDocument renders r as a complete UTF-8 XML document with a
// declaration, ready to send as a request body.
func EncodeDocument(r entity.Resource) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.AddChild(Encode(r))
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("codec: serialize %q document: %w", r.NodeName(), err)
	}
	return data, nil
}
