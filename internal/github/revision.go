// ABOUTME: Revision tokens and write outcomes for the contents API.
// ABOUTME: A Revision is either create-intent or update-intent with a known SHA.

package github

import "fmt"

// Revision is the optimistic-concurrency token sent with a write. The zero
// value is create intent.
type Revision struct {
	sha    string
	update bool
}

// CreateRevision marks a write that expects the file not to exist yet.
func CreateRevision() Revision {
	return Revision{}
}

// UpdateRevision marks a write that replaces the file at sha.
func UpdateRevision(sha string) Revision {
	return Revision{sha: sha, update: true}
}

func (r Revision) IsUpdate() bool { return r.update }
func (r Revision) SHA() string    { return r.sha }

func (r Revision) String() string {
	if !r.update {
		return "create"
	}
	return "update@" + r.sha
}

// Document is the result of reading one file.
type Document struct {
	Path    string
	Content []byte
	SHA     string
	Exists  bool
	// Skipped is set when no credentials are configured and nothing was read.
	Skipped bool
}

// Revision returns the token a follow-up write of this document should carry.
func (d Document) Revision() Revision {
	if d.Exists && d.SHA != "" {
		return UpdateRevision(d.SHA)
	}
	return CreateRevision()
}

type OutcomeKind int

const (
	Saved OutcomeKind = iota
	Skipped
	Conflict
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Saved:
		return "saved"
	case Skipped:
		return "skipped"
	case Conflict:
		return "conflict"
	default:
		return "failed"
	}
}

// Outcome describes how a write ended. Writes never return errors; callers
// inspect the kind.
type Outcome struct {
	Kind OutcomeKind
	Path string
	SHA  string
	Err  error
}

// OK reports whether the content was stored remotely.
func (o Outcome) OK() bool { return o.Kind == Saved }

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s %s: %v", o.Kind, o.Path, o.Err)
	}
	return fmt.Sprintf("%s %s", o.Kind, o.Path)
}
