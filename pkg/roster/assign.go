package roster

import "github.com/harrisonrobin/teamload/pkg/model"

// Assign gives each task to the roster entry found by Lookup for its
// username. Assignments whose username is unknown are returned untouched.
func (r *Result) Assign(assignments []model.Assignment) []model.Assignment {
	var unresolved []model.Assignment
	for _, a := range assignments {
		m := r.Lookup(a.Username)
		if m == nil {
			unresolved = append(unresolved, a)
			continue
		}
		m.AddTask(a.Task)
	}
	return unresolved
}
