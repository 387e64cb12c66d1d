// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"encoding/json"
	"encoding/xml"
)

// DecodeJSON is the JSON-search-lookup specialization of ExtractRecords
// (spec.md §4.5): it unmarshals body into T and returns the zero value
// with an error on malformed JSON, so adapters can turn that error into an
// empty record sequence without retrying.
func DecodeJSON[T any](body []byte) (T, error) {
	var v T
	err := json.Unmarshal(body, &v)
	return v, err
}

// DecodeXML is the XML-search-lookup specialization of ExtractRecords.
func DecodeXML[T any](body []byte) (T, error) {
	var v T
	err := xml.Unmarshal(body, &v)
	return v, err
}
