package resource

import (
	"fmt"
	"strings"
)

// Op names a service operation.
type Op string

const (
	OpList            Op = "list"
	OpGet             Op = "get"
	OpListByReference Op = "list_by_reference"
	OpCreate          Op = "create"
	OpUpdate          Op = "update"
	OpDelete          Op = "delete"
	OpAppendEntry     Op = "append_entry"
)

// Descriptor carries what differs between resources beyond their Go types:
// the nouns used in client messages and the names of special fields.
type Descriptor struct {
	// Singular and Plural are the nouns used in client messages, e.g.
	// "material"/"materials".
	Singular string
	Plural   string

	// Entry is the noun for one element of EntriesField, e.g. "price".
	Entry        string
	EntriesField string

	// Parent names the referenced resource and ReferenceField the bson
	// field holding its id, e.g. "equipment"/"equipment_id".
	Parent         string
	ReferenceField string

	// Messages replaces the generated failure text of individual ops and
	// NotFound the generated not found text.
	Messages map[Op]string
	NotFound string
}

// HasEntries reports whether the resource keeps an append-only entry list.
func (d Descriptor) HasEntries() bool {
	return d.EntriesField != ""
}

// HasReference reports whether the resource can be listed by parent id.
func (d Descriptor) HasReference() bool {
	return d.ReferenceField != ""
}

// Message returns the client facing failure text for op.
func (d Descriptor) Message(op Op) string {
	if msg, ok := d.Messages[op]; ok {
		return msg
	}

	switch op {
	case OpList:
		return "Failed to fetch " + d.Plural
	case OpGet:
		return fmt.Sprintf("Failed to fetch %s by ID", d.Singular)
	case OpListByReference:
		return fmt.Sprintf("Failed to fetch %s by %s ID", d.Plural, d.Parent)
	case OpCreate:
		return "Failed to create " + d.Singular
	case OpUpdate:
		return "Failed to update " + d.Singular
	case OpDelete:
		return "Failed to delete " + d.Singular
	case OpAppendEntry:
		return fmt.Sprintf("Failed to add %s to %s", d.Entry, d.Singular)
	default:
		return fmt.Sprintf("Failed to %s %s", op, d.Singular)
	}
}

// NotFoundMessage returns e.g. "Material not found".
func (d Descriptor) NotFoundMessage() string {
	if d.NotFound != "" {
		return d.NotFound
	}
	if d.Singular == "" {
		return "Not found"
	}
	return strings.ToUpper(d.Singular[:1]) + d.Singular[1:] + " not found"
}
