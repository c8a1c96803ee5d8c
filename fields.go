// Copyright 2022 Satoshi Toyosawa
// SPDX-License-Identifier: MIT

package jpegmeta

import (
	_ "embed" // needed for the embedded Exif fields JSON
	"encoding/json"
	"fmt"
	"strconv"
)

// Tag names and type descriptors for IFD entries.
// Source: https://exiftool.org/TagNames/EXIF.html
//
//go:embed exif_fields.json
var exifFieldsJSON []byte

// TypeDesc describes one of the twelve IFD data types: its display
// name, the conversion kind, the width in bytes of a single value and
// whether values are signed.
type TypeDesc struct {
	Name   string
	Kind   Kind
	Size   uint32
	Signed bool
}

var (
	exifTagNames = map[uint16]string{}
	exifTypes    = map[uint16]TypeDesc{}
)

// TagName returns the name of the given tag ID. Tags missing from the
// table report ok == false; that is not an error.
func TagName(id uint16) (string, bool) {
	name, ok := exifTagNames[id]
	return name, ok
}

// TypeByID returns the descriptor of the given IFD data type.
func TypeByID(id uint16) (TypeDesc, bool) {
	desc, ok := exifTypes[id]
	return desc, ok
}

type exifFieldsFile struct {
	// Types is keyed by the decimal type ID, Tags by the tag ID as
	// four uppercase hex digits.
	Types map[string]exifTypeField `json:"types"`
	Tags  map[string]string        `json:"tags"`
}

type exifTypeField struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Size   uint32 `json:"size"`
	Signed bool   `json:"signed"`
}

func init() {
	var fields exifFieldsFile
	if err := json.Unmarshal(exifFieldsJSON, &fields); err != nil {
		panic(err)
	}
	for k, f := range fields.Types {
		id, err := strconv.ParseUint(k, 10, 16)
		if err != nil {
			panic(err)
		}
		kind, ok := kindFromName(f.Kind)
		if !ok {
			panic(fmt.Sprintf("exif_fields.json: type %s has unknown kind %q", k, f.Kind))
		}
		exifTypes[uint16(id)] = TypeDesc{Name: f.Name, Kind: kind, Size: f.Size, Signed: f.Signed}
	}
	for k, name := range fields.Tags {
		id, err := strconv.ParseUint(k, 16, 16)
		if err != nil {
			panic(err)
		}
		exifTagNames[uint16(id)] = name
	}
}

func kindFromName(s string) (Kind, bool) {
	switch s {
	case "bytes":
		return KindBytes, true
	case "string":
		return KindString, true
	case "int":
		return KindInt, true
	case "rational":
		return KindRational, true
	default:
		return 0, false
	}
}
