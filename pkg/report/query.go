// Package report runs roster queries and renders their outcomes.
package report

import (
	"errors"
	"fmt"

	"github.com/harrisonrobin/teamload/pkg/model"
	"github.com/harrisonrobin/teamload/pkg/roster"
)

// ErrUnknownTeam is returned when a query names a team code that was never declared.
var ErrUnknownTeam = errors.New("unknown team")

// Kind selects one of the five roster queries.
type Kind int

const (
	KindExpertise Kind = iota + 1
	KindUrgent
	KindWorkload
	KindBusiest
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindExpertise:
		return "Manager by Expertise"
	case KindUrgent:
		return "Urgent Tasks"
	case KindWorkload:
		return "Team Workloads"
	case KindBusiest:
		return "Busiest Members"
	case KindSearch:
		return "Tasks by Property"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Query describes one query run. An empty Team runs it for every team.
type Query struct {
	Kind  Kind
	Team  string
	Tag   string
	Key   string
	Value string
}

// Validate checks that the arguments the kind needs are present.
func (q Query) Validate() error {
	switch q.Kind {
	case KindExpertise:
		if q.Tag == "" {
			return errors.New("an expertise tag is required")
		}
	case KindSearch:
		if q.Key == "" {
			return errors.New("a property name is required")
		}
	case KindUrgent, KindWorkload, KindBusiest:
	default:
		return fmt.Errorf("unsupported query kind %d", int(q.Kind))
	}
	return nil
}

// Outcome collects one TeamResult per queried team, in declaration order.
type Outcome struct {
	Query Query        `json:"-"`
	Kind  string       `json:"query"`
	Teams []TeamResult `json:"teams"`
}

// Failed reports whether the query failed for any team.
func (o *Outcome) Failed() bool {
	for _, t := range o.Teams {
		if t.err != nil {
			return true
		}
	}
	return false
}

// Err joins the per-team failures.
func (o *Outcome) Err() error {
	var errs []error
	for _, t := range o.Teams {
		errs = append(errs, t.err)
	}
	return errors.Join(errs...)
}

type TeamResult struct {
	Code        string        `json:"team"`
	Name        string        `json:"name"`
	Experienced *bool         `json:"experienced,omitempty"`
	Tasks       []TaskResult  `json:"tasks,omitempty"`
	Workload    *float64      `json:"workload,omitempty"`
	Busiest     *MemberResult `json:"busiest,omitempty"`
	Error       string        `json:"error,omitempty"`

	err error
}

type TaskResult struct {
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	Tags       []string          `json:"tags"`
	Properties map[string]string `json:"properties"`
}

type MemberResult struct {
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Workload float64 `json:"workload"`
}

// Execute runs q against res. Per-team query failures, such as a task
// missing a property, are recorded on that team's result; only an
// invalid query or an unknown team code is returned as an error.
func Execute(res *roster.Result, q Query) (*Outcome, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	teams := res.Teams
	if q.Team != "" {
		team := res.Team(q.Team)
		if team == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, q.Team)
		}
		teams = []*model.Team{team}
	}

	out := &Outcome{Query: q, Kind: q.Kind.String(), Teams: make([]TeamResult, 0, len(teams))}
	for _, team := range teams {
		out.Teams = append(out.Teams, run(team, q))
	}
	return out, nil
}

func run(team *model.Team, q Query) TeamResult {
	tr := TeamResult{Code: team.Code, Name: team.Name}

	switch q.Kind {
	case KindExpertise:
		experienced := team.IsManagerExperiencedWith(q.Tag)
		tr.Experienced = &experienced
	case KindUrgent:
		tr.Tasks = taskResults(team.UrgentTasks())
	case KindWorkload:
		hours, err := team.Workload()
		if err != nil {
			tr.setErr(err)
			break
		}
		tr.Workload = &hours
	case KindBusiest:
		member, err := team.BusiestMember()
		if err != nil {
			tr.setErr(err)
			break
		}
		if member != nil {
			// BusiestMember already summed this member successfully.
			hours, _ := member.Workload()
			tr.Busiest = &MemberResult{Username: member.Username, Name: member.Name, Role: member.Role.String(), Workload: hours}
		}
	case KindSearch:
		tasks, err := team.TasksByProperty(q.Key, q.Value)
		if err != nil {
			tr.setErr(err)
			break
		}
		tr.Tasks = taskResults(tasks)
	}
	return tr
}

func (tr *TeamResult) setErr(err error) {
	tr.err = err
	tr.Error = err.Error()
}

func taskResults(tasks []*model.Task) []TaskResult {
	results := make([]TaskResult, 0, len(tasks))
	for _, t := range tasks {
		results = append(results, TaskResult{Code: t.Code, Name: t.Name, Tags: t.Tags, Properties: t.Properties})
	}
	return results
}
