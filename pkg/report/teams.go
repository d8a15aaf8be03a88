package report

import "github.com/harrisonrobin/teamload/pkg/roster"

// TeamView is the JSON shape of one team in the roster listing.
type TeamView struct {
	Code    string       `json:"code"`
	Name    string       `json:"name"`
	Members []MemberView `json:"members"`
}

type MemberView struct {
	Username  string   `json:"username"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Tasks     int      `json:"tasks"`
	Expertise []string `json:"expertise,omitempty"`
}

// Teams flattens the parsed roster for JSON output.
func Teams(res *roster.Result) []TeamView {
	views := make([]TeamView, 0, len(res.Teams))
	for _, team := range res.Teams {
		view := TeamView{Code: team.Code, Name: team.Name, Members: make([]MemberView, 0, len(team.Members()))}
		for _, m := range team.Members() {
			view.Members = append(view.Members, MemberView{
				Username:  m.Username,
				Name:      m.Name,
				Role:      m.Role.String(),
				Tasks:     len(m.Tasks()),
				Expertise: m.Expertise(),
			})
		}
		views = append(views, view)
	}
	return views
}
