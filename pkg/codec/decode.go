package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/getyouridx/pychargify/pkg/entity"
)

// ErrMultipleOrNoResults is returned when a decode that needs a single
// element finds an ambiguous document: DecodeOne reports it for more than
// one match, DecodeUnique for anything other than exactly one.
var ErrMultipleOrNoResults = errors.New("codec: expected exactly one matching element")

var timeType = reflect.TypeOf(time.Time{})

func parseDocument(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("codec: parse document: %w", err)
	}
	return doc, nil
}

// DecodeOne builds a single instance of kind from the element named
// nodeName in data. Zero matches return (nil, nil) so callers can tell "not
// present in the payload" apart from a transport-level not-found; more than
// one match is ErrMultipleOrNoResults.
func DecodeOne(data []byte, kind entity.Kind, nodeName string, creds entity.Credentials) (entity.Resource, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	matches := doc.FindElements("//" + nodeName)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		r, err := decodeElement(matches[0], kind, creds)
		if err != nil {
			return nil, err
		}
		rememberNodeName(r, matches[0].Tag)
		return r, nil
	default:
		return nil, fmt.Errorf("%w: found %d %q elements", ErrMultipleOrNoResults, len(matches), nodeName)
	}
}

// DecodeUnique is DecodeOne for call sites that require exactly one result:
// zero matches is an error too.
func DecodeUnique(data []byte, kind entity.Kind, nodeName string, creds entity.Credentials) (entity.Resource, error) {
	r, err := DecodeOne(data, kind, nodeName, creds)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: no %q element", ErrMultipleOrNoResults, nodeName)
	}
	return r, nil
}

// DecodeMany builds one instance per element named nodeName, preserving
// document order. A document with no matches yields an empty slice.
func DecodeMany(data []byte, kind entity.Kind, nodeName string, creds entity.Credentials) ([]entity.Resource, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	matches := doc.FindElements("//" + nodeName)
	resources := make([]entity.Resource, 0, len(matches))
	for _, el := range matches {
		r, err := decodeElement(el, kind, creds)
		if err != nil {
			return nil, err
		}
		rememberNodeName(r, el.Tag)
		resources = append(resources, r)
	}
	return resources, nil
}

// decodeElement copies the children of el into a new instance of kind.
// Nested instances inherit creds so they are immediately usable for further
// calls. Child elements with no matching declared field are ignored; fields
// with no matching child keep their declared zero value.
func decodeElement(el *etree.Element, kind entity.Kind, creds entity.Credentials) (entity.Resource, error) {
	r, err := entity.New(kind, creds)
	if err != nil {
		return nil, err
	}

	nested := r.AttributeTypes()
	for _, child := range el.ChildElements() {
		if childKind, ok := nested[child.Tag]; ok {
			sub, err := decodeElement(child, childKind, creds)
			if err != nil {
				return nil, err
			}
			if err := setNested(r, child.Tag, sub); err != nil {
				return nil, err
			}
			continue
		}

		text := strings.TrimSpace(child.Text())
		if child.SelectAttrValue("type", "") == "datetime" && text != "" {
			t, err := parseDatetime(text)
			if err != nil {
				return nil, fmt.Errorf("codec: element %q: %w", child.Tag, err)
			}
			setTime(r, child.Tag, t)
			continue
		}
		setScalar(r, child.Tag, text)
	}
	return r, nil
}

// rememberNodeName records the tag a top-level instance was decoded from so
// a custom root tag survives re-encoding. Nested instances never get this:
// they must keep their request-form node names (a card arrives as
// credit_card but is always sent back as credit_card_attributes).
func rememberNodeName(r entity.Resource, tag string) {
	if tag != r.NodeName() {
		r.SetNodeName(tag)
	}
}

// parseDatetime parses an ISO 8601 timestamp and converts it to local time.
func parseDatetime(text string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Local(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", text)
}

// fieldByTag finds the struct field whose xml tag matches tag. v must be the
// dereferenced entity struct.
func fieldByTag(v reflect.Value, tag string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if xmlTag(t.Field(i)) == tag {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func xmlTag(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("xml")
	if comma := strings.Index(tag, ","); comma >= 0 {
		tag = tag[:comma]
	}
	return tag
}

// setNested assigns a decoded nested entity. When the child tag has no
// field of its own (credit_card_attributes aliases credit_card) the first
// field of the matching concrete type receives it.
func setNested(r entity.Resource, tag string, sub entity.Resource) error {
	v := reflect.ValueOf(r).Elem()
	sv := reflect.ValueOf(sub)
	if f, ok := fieldByTag(v, tag); ok && sv.Type().AssignableTo(f.Type()) {
		f.Set(sv)
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.Pointer && sv.Type() == f.Type() {
			f.Set(sv)
			return nil
		}
	}
	return fmt.Errorf("codec: %T has no field for nested element %q", r, tag)
}

func setTime(r entity.Resource, tag string, t time.Time) {
	v := reflect.ValueOf(r).Elem()
	f, ok := fieldByTag(v, tag)
	if !ok || f.Type() != timeType {
		return
	}
	f.Set(reflect.ValueOf(t))
}

// setScalar assigns literal element text to the matching field. Unknown
// elements are ignored; numeric fields keep their zero value when the text
// is empty or malformed, mirroring the declared-default rule.
func setScalar(r entity.Resource, tag, text string) {
	v := reflect.ValueOf(r).Elem()
	f, ok := fieldByTag(v, tag)
	if !ok {
		return
	}
	switch f.Kind() {
	case reflect.String:
		f.SetString(text)
	case reflect.Int, reflect.Int64:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			f.SetInt(n)
		}
	case reflect.Struct:
		// A time field whose element lacks the datetime attribute still
		// parses when the text is a valid timestamp; anything else keeps
		// the zero value, since time.Time cannot hold literal text.
		if f.Type() == timeType && text != "" {
			if t, err := parseDatetime(text); err == nil {
				f.Set(reflect.ValueOf(t))
			}
		}
	}
}
