package render

import (
	"html/template"
	"strings"

	"go-landwatch/types"
)

const (
	MsgLoading    = "Analyzing documents..."
	MsgLoadError  = "Error loading results."
	MsgConnection = "Error connecting to backend."
)

var entryTemplate = template.Must(template.New("entry").Parse(
	`<span class="tag {{.Category}}">{{.CategoryLabel}}</span>
<span class="tag {{.EffectClass}}">{{.EffectLabel}}</span>
<div class="result-title">{{.Title}}</div>
<div class="result-meta">&#128197; {{.PublicationDate}} | <strong>{{.ImpactLabel}}</strong></div>`))

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div class="popup-head"><strong class="impact-{{.Impact}}">{{.ImpactLabel}}</strong> &middot; <span class="{{.EffectClass}}">{{.EffectLabel}}</span></div>
<strong>{{.Title}}</strong><br>
<p>{{.Summary}}</p>
{{- if .URL}}
<a href="{{.URL}}" target="_blank">View Document</a>
{{- end}}`))

type popupData struct {
	Impact      types.Impact
	ImpactLabel string
	EffectClass string
	EffectLabel string
	Title       string
	Summary     string
	URL         string
}

func effectBadge(e types.EnvironmentEffect) (label, class string) {
	switch e {
	case types.Beneficial:
		return "🌿 Beneficial", "env-beneficial"
	case types.Detrimental:
		return "⚠️ Detrimental", "env-detrimental"
	}
	return "• Neutral", "env-neutral"
}

func impactLabel(i types.Impact) string {
	return strings.ToUpper(string(i)) + " IMPACT"
}

func execute(t *template.Template, data any) template.HTML {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(sb.String())
}
