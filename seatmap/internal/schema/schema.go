// Package schema validates request bodies before they are decoded.
package schema

import (
	"github.com/xeipuuv/gojsonschema"
)

const startSession = `{
	"type": "object",
	"required": ["flight_order_id"],
	"properties": {
		"booking_id": {"type": "string", "minLength": 1},
		"flight_order_id": {"type": "string", "minLength": 1}
	}
}`

const selectSeat = `{
	"type": "object",
	"required": ["booking_id", "traveler_id", "seat_number"],
	"properties": {
		"booking_id": {"type": "string", "minLength": 1},
		"traveler_id": {"type": "string", "minLength": 1},
		"seat_number": {"type": "string", "minLength": 1},
		"segment": {"type": "integer", "minimum": 0}
	}
}`

const confirmSeats = `{
	"type": "object",
	"required": ["booking_id", "contact_email"],
	"properties": {
		"booking_id": {"type": "string", "minLength": 1},
		"contact_email": {"type": "string", "format": "email"}
	}
}`

var (
	StartSession = mustCompile(startSession)
	SelectSeat   = mustCompile(selectSeat)
	ConfirmSeats = mustCompile(confirmSeats)
)

func mustCompile(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

// Validate returns the schema violations of body. A body that is not JSON at
// all is reported through err.
func Validate(schema *gojsonschema.Schema, body string) ([]gojsonschema.ResultError, error) {
	result, err := schema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	return result.Errors(), nil
}
