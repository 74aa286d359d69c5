// Package wire defines the JSON records exchanged with front ends that run
// prflow as a subprocess. Each record is written as a single line.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	prerrors "prflow.dev/prflow/internal/errors"
)

// Version of the record format. Readers reject any other version.
const Version = 1

var (
	// ErrVersionMismatch indicates a record written by an incompatible version
	ErrVersionMismatch = errors.New("wire: version mismatch")
	// ErrMissingField indicates a record without a required field
	ErrMissingField = errors.New("wire: missing required field")
)

// Envelope carries the fields shared by every record
type Envelope struct {
	Version   int    `json:"version"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"errorKind,omitempty"`
}

func (e *Envelope) envelope() *Envelope {
	return e
}

// Failed reports whether the record carries an error
func (e *Envelope) Failed() bool {
	return e.Error != ""
}

// Record is implemented by every wire record
type Record interface {
	envelope() *Envelope
	Validate() error
}

// Fail attaches err to the record, keeping any partial data already set
func Fail(rec Record, err error) {
	if err == nil {
		return
	}
	env := rec.envelope()
	env.Error = err.Error()
	env.ErrorKind = prerrors.Kind(err)
}

// Write stamps the version, validates and encodes rec as one JSON line
func Write(w io.Writer, rec Record) error {
	rec.envelope().Version = Version
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("wire: encode: %w", err)
	}
	return nil
}

func read[T any, PT interface {
	*T
	Record
}](r io.Reader) (PT, error) {
	rec := PT(new(T))
	if err := json.NewDecoder(r).Decode(rec); err != nil {
		return nil, fmt.Errorf("wire: decode: %w", err)
	}
	if v := rec.envelope().Version; v != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, v, Version)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

type field struct {
	name, value string
}

// requireFields checks fields in order; records carrying an error may be partial
func requireFields(failed bool, fields ...field) error {
	if failed {
		return nil
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// GitData is the repository snapshot used to prefill a front end form
type GitData struct {
	Envelope
	CurrentBranch    string   `json:"currentBranch"`
	RemoteBranches   []string `json:"remoteBranches"`
	Contributors     []string `json:"contributors"`
	SuggestedTickets []string `json:"suggestedTickets"`
	SuggestedTitle   string   `json:"suggestedTitle"`
	Strategy         string   `json:"strategy,omitempty"`
	SuggestedTargets []string `json:"suggestedTargets,omitempty"`
}

// Validate checks the required fields
func (d *GitData) Validate() error {
	if d.RemoteBranches == nil {
		d.RemoteBranches = []string{}
	}
	if d.Contributors == nil {
		d.Contributors = []string{}
	}
	if d.SuggestedTickets == nil {
		d.SuggestedTickets = []string{}
	}
	return requireFields(d.Failed(), field{"currentBranch", d.CurrentBranch})
}

// ReadGitData decodes and validates a GitData record
func ReadGitData(r io.Reader) (*GitData, error) {
	return read[GitData](r)
}

// Description is the commit-derived description between two branches
type Description struct {
	Envelope
	Source      string   `json:"source"`
	Target      string   `json:"target"`
	Description string   `json:"description"`
	Commits     []string `json:"commits"`
}

// Validate checks the required fields
func (d *Description) Validate() error {
	if d.Commits == nil {
		d.Commits = []string{}
	}
	return requireFields(d.Failed(), field{"source", d.Source}, field{"target", d.Target})
}

// ReadDescription decodes and validates a Description record
func ReadDescription(r io.Reader) (*Description, error) {
	return read[Description](r)
}

// Preview is the pull request that would be created for the first target
type Preview struct {
	Envelope
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tickets   []string `json:"tickets"`
	Reviewers []string `json:"reviewers"`
}

// Validate checks the required fields
func (p *Preview) Validate() error {
	if p.Tickets == nil {
		p.Tickets = []string{}
	}
	if p.Reviewers == nil {
		p.Reviewers = []string{}
	}
	return requireFields(p.Failed(), field{"source", p.Source}, field{"target", p.Target}, field{"title", p.Title})
}

// ReadPreview decodes and validates a Preview record
func ReadPreview(r io.Reader) (*Preview, error) {
	return read[Preview](r)
}

// TargetResult is the outcome of creating the pull request for one target
type TargetResult struct {
	Target  string `json:"target"`
	URL     string `json:"url,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CreateResult reports every pull request created in headless mode
type CreateResult struct {
	Envelope
	Success bool           `json:"success"`
	Results []TargetResult `json:"results"`
}

// Validate checks the required fields
func (c *CreateResult) Validate() error {
	if c.Results == nil {
		c.Results = []TargetResult{}
	}
	for i, r := range c.Results {
		if r.Target == "" {
			return fmt.Errorf("%w: results[%d].target", ErrMissingField, i)
		}
	}
	return nil
}

// ReadCreateResult decodes and validates a CreateResult record
func ReadCreateResult(r io.Reader) (*CreateResult, error) {
	return read[CreateResult](r)
}

// Failure reports an error that happened before any record could be built
type Failure struct {
	Envelope
}

// Validate checks the required fields
func (f *Failure) Validate() error {
	if !f.Failed() {
		return fmt.Errorf("%w: error", ErrMissingField)
	}
	return nil
}

// NewFailure builds a Failure record for err
func NewFailure(err error) *Failure {
	f := &Failure{}
	Fail(f, err)
	return f
}

// ReadFailure decodes and validates a Failure record
func ReadFailure(r io.Reader) (*Failure, error) {
	return read[Failure](r)
}

// ReportedError marks an error whose record has already been written
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Reported wraps err to tell callers not to write another record for it
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}

// IsReported reports whether err was already written as a record
func IsReported(err error) bool {
	var r *ReportedError
	return errors.As(err, &r)
}
