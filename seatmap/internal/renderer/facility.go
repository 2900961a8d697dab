package renderer

import "github.com/meetupaws/flight_seat_map/seatmap/internal/model"

type FacilityKind string

const (
	FacilityGalley   FacilityKind = "GALLEY"
	FacilityLavatory FacilityKind = "LAVATORY"
	FacilityCloset   FacilityKind = "CLOSET"
	FacilityStairs   FacilityKind = "STAIRS"
	FacilityOther    FacilityKind = "OTHER"
)

type facilityStyle struct {
	kind  FacilityKind
	label string
	icon  string
}

var facilityStyles = map[string]facilityStyle{
	"G":  {FacilityGalley, "Galley", "☕"},
	"LA": {FacilityLavatory, "Lavatory", "🚻"},
	"CL": {FacilityCloset, "Closet", "🔒"},
	"ST": {FacilityStairs, "Stairs", "🚪"},
}

var genericFacility = facilityStyle{FacilityOther, "", "•"}

// FacilityCell is a read-only placeholder for a non-seat cell.
type FacilityCell struct {
	Code  string       `json:"code"`
	Kind  FacilityKind `json:"kind"`
	Label string       `json:"label,omitempty"`
	Icon  string       `json:"icon"`
}

func NewFacilityCell(f model.Facility) FacilityCell {
	style, ok := facilityStyles[f.Code]
	if !ok {
		style = genericFacility
	}
	return FacilityCell{
		Code:  f.Code,
		Kind:  style.kind,
		Label: style.label,
		Icon:  style.icon,
	}
}
