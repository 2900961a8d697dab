package renderer

import (
	"html/template"
	"strconv"
	"strings"
)

var templateFuncs = template.FuncMap{
	"px": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64) + "px"
	},
	"lower": strings.ToLower,
	"seatClass": func(c *SeatCell) string {
		classes := []string{"seat", "seat--" + strings.ToLower(string(c.State))}
		if c.State == StateAvailable {
			if c.Chargeable {
				classes = append(classes, "seat--preferred")
			} else {
				classes = append(classes, "seat--free")
			}
		}
		if c.ExitRow {
			classes = append(classes, "seat--exit")
		}
		if c.Hovered {
			classes = append(classes, "seat--hovered")
		}
		return strings.Join(classes, " ")
	},
}

const seatMapTemplate = `
{{- if .Empty -}}
<div class="seatmap seatmap--empty">
  <span class="seatmap__warning" aria-hidden="true">⚠</span>
  <p>No seat map available for this flight.</p>
</div>
{{- else -}}
<div class="seatmap{{if .ReadOnly}} seatmap--readonly{{end}}" data-traveler="{{.TravelerID}}">
  <div class="seatmap__map">
    <ul class="seatmap__legend">
      {{- range .Legend}}
      <li class="legend legend--{{.Class}}">{{.Label}}</li>
      {{- end}}
    </ul>
    {{- if .Layout.Nose}}
    <div class="seatmap__nose"><span>Cockpit</span></div>
    {{- end}}
    <div class="seatmap__grid" style="grid-template-columns: repeat({{.Layout.Columns}}, {{.Layout.ColumnWidth}}px)">
      {{- with .Layout.Wing}}
      <div class="wing wing--left" style="top: {{px .Top}}; height: {{px .Height}}">WING</div>
      <div class="wing wing--right" style="top: {{px .Top}}; height: {{px .Height}}">WING</div>
      <div class="wing wing--mid" style="top: {{px .Top}}; height: {{px .Height}}"></div>
      {{- end}}
      {{- range .Layout.Exits}}
      <div class="exit exit--left" style="top: {{px .LabelTop}}">EXIT</div>
      <div class="exit exit--right" style="top: {{px .LabelTop}}">EXIT</div>
      <div class="exit__line" style="top: {{px .LineTop}}"></div>
      {{- end}}
      {{- range .Rows}}
      {{- range .Cells}}
      {{- if eq .Kind "seat"}}{{template "seat" .Seat}}
      {{- else if eq .Kind "facility"}}{{template "facility" .Facility}}
      {{- else}}
      <div class="void"></div>
      {{- end}}
      {{- end}}
      {{- end}}
    </div>
  </div>
  {{template "detail" .Detail}}
</div>
{{- end}}

{{- define "seat"}}
      <div class="cell">
        <button type="button" class="{{seatClass .}}" data-seat="{{.Number}}" data-state="{{.State}}"{{if not .Interactive}} disabled{{end}}>
          <span class="seat__number">{{.Number}}</span>
          {{- if .Badge}}
          <span class="seat__badge">{{.Badge}}</span>
          {{- end}}
          {{- if .Selected}}
          <span class="seat__check" aria-label="selected">✔</span>
          {{- end}}
          {{- if .Window}}
          <span class="seat__window" title="Window"></span>
          {{- end}}
          {{- if .ExitRow}}
          <span class="seat__exit-marker"></span>
          {{- end}}
        </button>
        {{- if .ExitLeft}}
        <span class="seat__exit-side seat__exit-side--left">EXIT</span>
        {{- end}}
        {{- if .ExitRight}}
        <span class="seat__exit-side seat__exit-side--right">EXIT</span>
        {{- end}}
      </div>
{{- end}}

{{- define "facility"}}
      <div class="facility facility--{{lower (print .Kind)}}"{{if .Label}} title="{{.Label}}"{{end}}>{{.Icon}}</div>
{{- end}}

{{- define "detail"}}
  <aside class="seatmap__detail">
    <h4>Selection Details{{if .Verified}} <span class="tag tag--verified">Verified</span>{{end}}</h4>
    {{- if .Hovered}}
    <div class="detail__number">{{.Number}}</div>
    <div class="detail__subtitle">{{.Subtitle}}</div>
    <div class="detail__features">
      {{- range .Features}}
      <span class="badge">{{.}}</span>
      {{- end}}
    </div>
    <div class="detail__fare"><span>Base Fare</span> <strong>{{.Fare}}</strong></div>
    <p class="detail__note">* Prices are verified in real-time. Final totals include taxes and airport fees where applicable.</p>
    {{- else}}
    <p class="detail__prompt">Hover over a seat to view features and pricing details.</p>
    {{- end}}
    {{- if .Assignment}}
    <div class="detail__assignment">
      <div class="assignment__label">Traveler Assignment</div>
      <div class="assignment__seat">{{.Assignment}}</div>
      <div class="assignment__traveler">Passenger {{.TravelerID}}</div>
    </div>
    {{- end}}
  </aside>
{{- end}}
`
