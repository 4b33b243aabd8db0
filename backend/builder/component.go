// Package builder holds the configuration state and validation engine for a
// custom PC build: the component records, the per-session configuration store,
// the derived-field reconciliation and the submit/save pipeline. It has no
// transport or storage dependencies; handlers and persistence plug in from
// the outside.
package builder

import (
	"strconv"
	"strings"
)

// ComponentType classifies a component record. Empty only transiently, before
// the user picks a type.
type ComponentType string

const (
	TypeCPU     ComponentType = "cpu"
	TypeGPU     ComponentType = "gpu"
	TypeRAM     ComponentType = "ram"
	TypeStorage ComponentType = "storage"
)

// Valid reports whether t is one of the known component types.
func (t ComponentType) Valid() bool {
	switch t {
	case TypeCPU, TypeGPU, TypeRAM, TypeStorage:
		return true
	}
	return false
}

// StorageKind is the storage medium of a storage component.
type StorageKind string

const (
	StorageSSD StorageKind = "ssd"
	StorageHDD StorageKind = "hdd"
)

func (k StorageKind) Valid() bool {
	return k == StorageSSD || k == StorageHDD
}

// Field names as they appear in update payloads and validation error paths.
const (
	FieldType        = "type"
	FieldName        = "name"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldStorageType = "storageType"
)

// ComponentRecord is one entry in a configuration. Price keeps the raw user
// input; it is parsed wherever a number is needed so that a half-typed value
// never breaks a mutation.
type ComponentRecord struct {
	Type        ComponentType `json:"type"`
	Name        string        `json:"name"`
	Price       string        `json:"price"`
	Capacity    string        `json:"capacity"`
	StorageType StorageKind   `json:"storageType"`
}

// ApplicableFields returns the fields that matter for records of type t.
// Both the reconciler (stale-field clearing) and the validation engine consult
// this, so the two can never disagree about which fields count.
func ApplicableFields(t ComponentType) []string {
	switch t {
	case TypeRAM:
		return []string{FieldType, FieldName, FieldPrice, FieldCapacity}
	case TypeStorage:
		return []string{FieldType, FieldName, FieldPrice, FieldCapacity, FieldStorageType}
	default:
		// cpu, gpu and the not-yet-chosen type share the base field set.
		return []string{FieldType, FieldName, FieldPrice}
	}
}

// FieldApplicable reports whether field is in ApplicableFields(t).
func FieldApplicable(t ComponentType, field string) bool {
	for _, f := range ApplicableFields(t) {
		if f == field {
			return true
		}
	}
	return false
}

// ParsePrice parses a raw price input. ok is false for empty or unparsable
// values; callers coerce those to 0 when summing.
func ParsePrice(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
