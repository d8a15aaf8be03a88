package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/harrisonrobin/teamload/pkg/model"
)

// ErrSourceUnavailable is returned when the roster file cannot be opened.
var ErrSourceUnavailable = errors.New("roster source unavailable")

type recordKind int

const (
	teamRecord recordKind = iota
	managerRecord
	memberRecord
)

// wordChars and spaceChars are the bodies of Unicode-aware \w and \s
// classes: letters, digits and underscore, and every Unicode space.
const (
	wordChars  = `\p{L}\p{N}_`
	spaceChars = `\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}`
)

// maxLineLength caps a single roster line. Longer lines are skipped.
const maxLineLength = 1 << 20

// recordPatterns is tried top to bottom; the first match decides the
// record kind, so the team form must stay ahead of the bare forms.
var recordPatterns = []struct {
	kind recordKind
	re   *regexp.Regexp
}{
	{teamRecord, regexp.MustCompile(`^([` + wordChars + spaceChars + `]+)[` + spaceChars + `]+<([` + wordChars + `]+)>[` + spaceChars + `]*->[` + spaceChars + `]*([` + wordChars + `,]+)$`)},
	{managerRecord, regexp.MustCompile(`^([` + wordChars + spaceChars + `]+)[` + spaceChars + `]+<!([` + wordChars + `]+)>$`)},
	{memberRecord, regexp.MustCompile(`^([` + wordChars + spaceChars + `]+)[` + spaceChars + `]+<([` + wordChars + `]+)>$`)},
}

// Result holds everything a single parse produced.
type Result struct {
	Source   string
	Teams    []*model.Team
	Members  []*model.Member
	Managers []*model.Member

	// Skipped lists the 1-based line numbers that matched no record shape.
	Skipped []int
	// Unresolved lists roster usernames that had not been declared yet.
	Unresolved []Unresolved
}

// Unresolved is a roster username that could not be found when its team was declared.
type Unresolved struct {
	Line     int
	Team     string
	Username string
}

// ParseFile parses the roster file at path.
func ParseFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer file.Close()
	return Parse(file, path)
}

// Parse reads roster records line by line. Member and manager lines that
// follow a team line join that team; team lines pull in every previously
// declared entry named in their roster list. Lines that match nothing are
// skipped.
func Parse(r io.Reader, source string) (*Result, error) {
	reader := bufio.NewReader(r)
	res := &Result{Source: source}
	var currentTeam *model.Team

	lineNo := 0
	for {
		raw, tooLong, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		lineNo++
		if tooLong {
			res.Skipped = append(res.Skipped, lineNo)
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		kind, matches, ok := matchRecord(line)
		if !ok {
			res.Skipped = append(res.Skipped, lineNo)
			continue
		}

		switch kind {
		case teamRecord:
			currentTeam = model.NewTeam(matches[2], strings.TrimSpace(matches[1]))
			for _, username := range strings.Split(matches[3], ",") {
				username = strings.TrimSpace(username)
				if username == "" {
					continue
				}
				found := res.lookupAll(username)
				for _, m := range found {
					currentTeam.AddMember(m)
				}
				if len(found) == 0 {
					res.Unresolved = append(res.Unresolved, Unresolved{Line: lineNo, Team: currentTeam.Code, Username: username})
				}
			}
			res.Teams = append(res.Teams, currentTeam)
		case managerRecord:
			manager := model.NewManager(strings.TrimSpace(matches[1]), matches[2])
			res.Managers = append(res.Managers, manager)
			if currentTeam != nil {
				currentTeam.AddMember(manager)
			}
		case memberRecord:
			member := model.NewMember(strings.TrimSpace(matches[1]), matches[2])
			res.Members = append(res.Members, member)
			if currentTeam != nil {
				currentTeam.AddMember(member)
			}
		}
	}

	return res, nil
}

// readLine returns the next line without its line ending. A line longer
// than maxLineLength is consumed and reported as tooLong.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineLength {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func matchRecord(line string) (recordKind, []string, bool) {
	for _, p := range recordPatterns {
		if matches := p.re.FindStringSubmatch(line); matches != nil {
			return p.kind, matches, true
		}
	}
	return 0, nil, false
}

// Lookup returns the first entry declared with username, searching
// members before managers. It returns nil when nobody matches.
func (r *Result) Lookup(username string) *model.Member {
	for _, m := range r.Entries() {
		if m.Username == username {
			return m
		}
	}
	return nil
}

// lookupAll returns every member, then every manager, declared with username.
func (r *Result) lookupAll(username string) []*model.Member {
	var found []*model.Member
	for _, m := range r.Entries() {
		if m.Username == username {
			found = append(found, m)
		}
	}
	return found
}

// Entries returns all members followed by all managers.
func (r *Result) Entries() []*model.Member {
	entries := make([]*model.Member, 0, len(r.Members)+len(r.Managers))
	entries = append(entries, r.Members...)
	return append(entries, r.Managers...)
}

// Team returns the first team declared with code, or nil.
func (r *Result) Team(code string) *model.Team {
	for _, t := range r.Teams {
		if t.Code == code {
			return t
		}
	}
	return nil
}
