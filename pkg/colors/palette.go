package colors

import "github.com/charmbracelet/lipgloss"

// DefaultColors are the team accent colors, in assignment order.
var DefaultColors = []lipgloss.Color{
	"#A78BFA", // purple
	"#10B981", // green
	"#60A5FA", // blue
	"#F59E0B", // amber
	"#F472B6", // pink
	"#FB923C", // orange
	"#2DD4BF", // teal
	"#FBBF24", // yellow
}

// NoTeamColor is used for entries that belong to no team.
const NoTeamColor = lipgloss.Color("#9CA3AF")

type teamState struct {
	color    lipgloss.Color
	lastUsed uint64
}

// Palette hands out a stable accent color per team code. When every color
// is taken, the least recently used team gives up its color.
type Palette struct {
	colors []lipgloss.Color
	teams  map[string]*teamState
	clock  uint64
}

func NewPalette(colors []lipgloss.Color) *Palette {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	return &Palette{colors: colors, teams: make(map[string]*teamState)}
}

// Color returns the color for a team code, assigning one on first use.
func (p *Palette) Color(team string) lipgloss.Color {
	if team == "" {
		return NoTeamColor
	}
	p.clock++

	if state, exists := p.teams[team]; exists {
		state.lastUsed = p.clock
		return state.color
	}
	return p.assignColor(team)
}

func (p *Palette) assignColor(team string) lipgloss.Color {
	used := make(map[lipgloss.Color]bool)
	for _, s := range p.teams {
		used[s.color] = true
	}

	for _, c := range p.colors {
		if !used[c] {
			p.teams[team] = &teamState{color: c, lastUsed: p.clock}
			return c
		}
	}

	// Palette is full -> evict the least recently used team
	var oldestTeam string
	var oldest uint64
	first := true
	for code, s := range p.teams {
		if first || s.lastUsed < oldest {
			oldest = s.lastUsed
			oldestTeam = code
			first = false
		}
	}

	recycled := p.teams[oldestTeam].color
	delete(p.teams, oldestTeam)
	p.teams[team] = &teamState{color: recycled, lastUsed: p.clock}
	return recycled
}

// Style returns a bold foreground style in the team's color.
func (p *Palette) Style(team string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Color(team))
}
