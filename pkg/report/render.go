package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/harrisonrobin/teamload/pkg/colors"
	"github.com/harrisonrobin/teamload/pkg/roster"
	"github.com/harrisonrobin/teamload/pkg/util"
)

// Renderer turns outcomes into terminal text, coloring each team consistently.
type Renderer struct {
	palette *colors.Palette
}

func NewRenderer(palette *colors.Palette) *Renderer {
	if palette == nil {
		palette = colors.NewPalette(nil)
	}
	return &Renderer{palette: palette}
}

// Outcome renders a query outcome as text.
func (r *Renderer) Outcome(o *Outcome) string {
	var b strings.Builder
	b.WriteString(Title.Render(o.Query.Kind.String()))
	b.WriteString(Muted.Render(describe(o.Query)))
	b.WriteString("\n")

	if len(o.Teams) == 0 {
		b.WriteString(Muted.Render("  no teams"))
		b.WriteString("\n")
		return b.String()
	}

	for _, tr := range o.Teams {
		b.WriteString(r.teamHeader(tr.Code, tr.Name))
		b.WriteString("\n")
		if tr.Error != "" {
			b.WriteString("    ")
			b.WriteString(Failure.Render("error: " + tr.Error))
			b.WriteString("\n")
			continue
		}
		b.WriteString(teamBody(o.Query, tr))
	}
	return b.String()
}

func (r *Renderer) teamHeader(code, name string) string {
	return "  " + r.palette.Style(code).Render(name) + Muted.Render(" <"+code+">")
}

func describe(q Query) string {
	var parts []string
	if q.Team != "" {
		parts = append(parts, "team="+q.Team)
	}
	switch q.Kind {
	case KindExpertise:
		parts = append(parts, "tag="+q.Tag)
	case KindSearch:
		parts = append(parts, fmt.Sprintf("%s=%s", q.Key, q.Value))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func teamBody(q Query, tr TeamResult) string {
	var b strings.Builder
	switch q.Kind {
	case KindExpertise:
		if tr.Experienced != nil && *tr.Experienced {
			fmt.Fprintf(&b, "    %s\n", Success.Render("a manager is experienced with "+q.Tag))
		} else {
			fmt.Fprintf(&b, "    %s\n", Muted.Render("no manager is experienced with "+q.Tag))
		}
	case KindUrgent, KindSearch:
		if len(tr.Tasks) == 0 {
			fmt.Fprintf(&b, "    %s\n", Muted.Render("no matching tasks"))
		}
		for _, t := range tr.Tasks {
			fmt.Fprintf(&b, "    %s\n", taskLine(t))
		}
	case KindWorkload:
		if tr.Workload != nil {
			fmt.Fprintf(&b, "    %s hours\n", Text.Render(util.FormatHours(*tr.Workload)))
		}
	case KindBusiest:
		if tr.Busiest == nil {
			fmt.Fprintf(&b, "    %s\n", Muted.Render("no member has any workload"))
		} else {
			fmt.Fprintf(&b, "    %s %s %s\n",
				Text.Render(tr.Busiest.Name),
				Muted.Render("<"+tr.Busiest.Username+">"),
				Text.Render(util.FormatHours(tr.Busiest.Workload)+" hours"))
		}
	}
	return b.String()
}

func taskLine(t TaskResult) string {
	var b strings.Builder
	b.WriteString(Text.Render(t.Code + "  " + t.Name))
	for _, tag := range t.Tags {
		b.WriteString(" ")
		b.WriteString(Tag.Render("#" + tag))
	}
	if len(t.Properties) > 0 {
		keys := make([]string, 0, len(t.Properties))
		for k := range t.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		props := make([]string, 0, len(keys))
		for _, k := range keys {
			props = append(props, k+"="+t.Properties[k])
		}
		b.WriteString(" ")
		b.WriteString(Muted.Render("{" + strings.Join(props, ", ") + "}"))
	}
	return b.String()
}

// Roster lists every team with its members, the way the roster was wired.
func (r *Renderer) Roster(res *roster.Result) string {
	var b strings.Builder
	b.WriteString(Title.Render("Teams"))
	b.WriteString("\n")
	if len(res.Teams) == 0 {
		b.WriteString(Muted.Render("  no teams"))
		b.WriteString("\n")
	}
	for _, team := range res.Teams {
		b.WriteString(r.teamHeader(team.Code, team.Name))
		b.WriteString("\n")
		for _, m := range team.Members() {
			line := fmt.Sprintf("    %s %s", Text.Render(m.Username), Muted.Render(m.Name))
			if m.IsManager() {
				line += " " + Tag.Render("[manager]")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
