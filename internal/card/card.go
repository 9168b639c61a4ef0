package card

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arcanaland/tcgoracle/internal/normalize"
	"github.com/arcanaland/tcgoracle/internal/ordered"
)

// UnknownType is shown for cards whose type is blank or absent.
const UnknownType = "Unknown Type"

// UnknownSet is shown for cards without any set name field.
const UnknownSet = "Unknown Set"

// Card represents a single printing from the card catalog
type Card struct {
	ID      string // Stable identifier, compared case-insensitively
	Name    string // Display name
	Type    string // Free-text type line, may be empty
	Text    string // Rules text
	Image   string // Image reference relative to the game's image root
	SetName string // setName, Set or set; UnknownSet when absent
	NameKey string // normalize.CompactKey(Name)

	// NormalizedName is normalize.Normalize(Name).
	NormalizedName string

	// fields maps each normalized field name to the first raw value in
	// document order carrying that name.
	fields map[string]any
}

// New builds a card from raw named fields. Field names are indexed in sorted
// order; use FromObject when document order matters.
func New(fields map[string]any) *Card {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := ordered.NewMap[string, any]()
	for _, k := range keys {
		obj.Set(k, fields[k])
	}
	return FromObject(obj)
}

// FromObject builds a card from an ordered set of raw fields.
func FromObject(obj *ordered.Map[string, any]) *Card {
	c := &Card{fields: make(map[string]any, obj.Len())}

	for k, v := range obj.All() {
		nk := normalize.Normalize(k)
		if _, exists := c.fields[nk]; !exists {
			c.fields[nk] = v
		}
	}

	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := obj.Get(k); ok {
				if s := stringValue(v); s != "" {
					return s
				}
			}
		}
		return ""
	}

	c.ID = get("id")
	c.Name = get("name")
	c.Type = get("Type", "type")
	c.Text = get("Text", "text")
	c.Image = get("image")
	c.SetName = get("setName", "Set", "set")
	if c.SetName == "" {
		c.SetName = UnknownSet
	}
	c.NormalizedName = normalize.Normalize(c.Name)
	c.NameKey = normalize.CompactKey(c.Name)

	return c
}

// UnmarshalJSON decodes a card object, keeping field order for the field index.
func (c *Card) UnmarshalJSON(data []byte) error {
	raw, err := ordered.DecodeObject(data)
	if err != nil {
		return err
	}

	obj := ordered.NewMap[string, any]()
	for k, v := range raw.All() {
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		obj.Set(k, value)
	}

	*c = *FromObject(obj)
	return nil
}

// Field returns the value of the first field whose normalized name equals
// name. name must already be normalized.
func (c *Card) Field(name string) (any, bool) {
	v, ok := c.fields[name]
	return v, ok
}

// DisplayType returns the type line, or UnknownType when it is blank.
func (c *Card) DisplayType() string {
	if t := strings.TrimSpace(c.Type); t != "" {
		return t
	}
	return UnknownType
}

// StringValue renders a raw field value as text for substring comparison.
func StringValue(v any) string {
	return stringValue(v)
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = stringValue(e)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return val.String()
	default:
		return ""
	}
}
