package copyright

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hookwright/copyright-hooks/comment_markers"
	"github.com/hookwright/copyright-hooks/copyright/models"
	"github.com/hookwright/copyright-hooks/history"
	"github.com/hookwright/copyright-hooks/history/contracts"
	"github.com/natefinch/atomic"
	"github.com/pterm/pterm"
)

// ErrInternalConsistency means a rewritten file no longer parses as expected.
// It always indicates a bug in the rewrite logic.
var ErrInternalConsistency = errors.New("internal consistency check failed")

// ErrUnreadableAnnotation is returned when a format and holder name produce a
// copyright string that does not read back with the intended years, such as a
// format without a signifier or a name that starts with a year after {name}.
var ErrUnreadableAnnotation = errors.New("copyright string cannot be read back")

// MarkerLookup resolves the comment markers for a file.
type MarkerLookup func(path string) (comment_markers.MarkerPair, error)

// Options controls how a single file is reconciled.
type Options struct {
	// Name is the copyright holder used for new annotations.
	Name string
	// ResolveName is called when a new annotation is needed and Name is empty.
	ResolveName func() (string, error)
	// Format is the template for new annotations, see ValidateFormat.
	Format string
	// InsertMissing adds an annotation to files that have none. When false such
	// files are left untouched.
	InsertMissing bool
}

// Reconciler brings a file's copyright annotation up to date.
type Reconciler struct {
	History contracts.IHistoryProvider
	Now     func() time.Time
	Lookup  MarkerLookup
	Logger  *pterm.Logger

	writeFile func(path string, content []byte) error
}

// NewReconciler creates a Reconciler. now is the only source of the current year.
func NewReconciler(provider contracts.IHistoryProvider, now func() time.Time, logger *pterm.Logger) *Reconciler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = &pterm.DefaultLogger
	}
	return &Reconciler{
		History:   provider,
		Now:       now,
		Lookup:    comment_markers.Lookup,
		Logger:    logger,
		writeFile: writeFileAtomic,
	}
}

// Reconcile inspects path and inserts or widens its copyright annotation so that
// it covers the years from the file's first commit to the current year.
func (r *Reconciler) Reconcile(ctx context.Context, path string, opts Options) (models.Outcome, error) {
	outcome := models.Outcome{Kind: models.Unchanged, Path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		return outcome, fmt.Errorf("failed to read file: %w", err)
	}
	content := string(raw)

	markers, err := r.Lookup(path)
	if err != nil {
		return outcome, err
	}

	existing, err := r.find(ctx, path, content, markers)
	if err != nil {
		return outcome, fmt.Errorf("file %s: %w", path, err)
	}

	if existing == nil && !opts.InsertMissing {
		r.Logger.Debug("no copyright string found", r.Logger.Args("file", path))
		return outcome, nil
	}

	end := r.Now().Year()
	start := r.requiredStart(ctx, path, existing, end)

	if existing == nil {
		return r.insert(ctx, path, content, markers, opts, start, end)
	}

	if existing.Covers(start, end) {
		r.Logger.Debug("copyright string up to date", r.Logger.Args("file", path, "years", FormatYears(existing.StartYear, existing.EndYear)))
		return outcome, nil
	}

	return r.update(ctx, path, content, markers, existing, start, end)
}

func (r *Reconciler) insert(ctx context.Context, path, content string, markers comment_markers.MarkerPair, opts Options, start, end int) (models.Outcome, error) {
	outcome := models.Outcome{Kind: models.Unchanged, Path: path}

	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}
	if err := ValidateFormat(format); err != nil {
		return outcome, err
	}

	name := opts.Name
	if name == "" && opts.ResolveName != nil {
		resolved, err := opts.ResolveName()
		if err != nil {
			return outcome, err
		}
		name = resolved
	}
	if name == "" {
		return outcome, errors.New("no copyright holder name configured")
	}

	annotation := BuildAnnotation(format, name, start, end, markers)
	if parsed, err := ParseComment(annotation, markers); err != nil || parsed == nil ||
		parsed.StartYear != start || parsed.EndYear != end {
		return outcome, fmt.Errorf("%w: format %q with name %q gives %q", ErrUnreadableAnnotation, format, name, annotation)
	}
	updated := InsertAnnotation(content, annotation)

	if err := r.verify(ctx, path, updated, markers, start, end); err != nil {
		return outcome, err
	}
	if err := r.writeFile(path, []byte(updated)); err != nil {
		return outcome, err
	}

	r.Logger.Debug("added copyright string", r.Logger.Args("file", path, "text", annotation))
	outcome.Kind = models.Inserted
	outcome.NewText = annotation
	return outcome, nil
}

func (r *Reconciler) update(ctx context.Context, path, content string, markers comment_markers.MarkerPair, existing *models.ParsedAnnotation, start, end int) (models.Outcome, error) {
	outcome := models.Outcome{Kind: models.Unchanged, Path: path}

	start = min(start, existing.StartYear)
	end = max(end, existing.EndYear)

	updated := RewriteYears(content, existing, start, end)
	if err := r.verify(ctx, path, updated, markers, start, end); err != nil {
		return outcome, err
	}
	if err := r.writeFile(path, []byte(updated)); err != nil {
		return outcome, err
	}

	outcome.Kind = models.Updated
	outcome.OldText = existing.Text
	outcome.NewText = rewriteText(existing, start, end)
	r.Logger.Debug("updated copyright string", r.Logger.Args("file", path, "old", outcome.OldText, "new", outcome.NewText))
	return outcome, nil
}

// find returns the single annotation of a file. Python files fall back to the
// module docstring when no comment matches.
func (r *Reconciler) find(ctx context.Context, path, content string, markers comment_markers.MarkerPair) (*models.ParsedAnnotation, error) {
	annotation, err := ParseComment(content, markers)
	if err != nil || annotation != nil {
		return annotation, err
	}
	if slices.Contains(comment_markers.Tags(path), "python") {
		return ParseDocstring(ctx, content)
	}
	return nil, nil
}

// requiredStart picks the first year the annotation must cover: the year of the
// first commit, else the existing start year, else the current year.
func (r *Reconciler) requiredStart(ctx context.Context, path string, existing *models.ParsedAnnotation, end int) int {
	if r.History != nil {
		year, err := r.History.EarliestYear(ctx, path)
		if err == nil {
			return min(year, end)
		}
		if errors.Is(err, history.ErrNoHistory) {
			r.Logger.Debug("no commit history", r.Logger.Args("file", path, "reason", err.Error()))
		} else {
			r.Logger.Debug("history lookup failed", r.Logger.Args("file", path, "error", err.Error()))
		}
	}
	if existing != nil {
		return min(existing.StartYear, end)
	}
	return end
}

func (r *Reconciler) verify(ctx context.Context, path, content string, markers comment_markers.MarkerPair, start, end int) error {
	annotation, err := r.find(ctx, path, content, markers)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInternalConsistency, path, err)
	}
	if annotation == nil {
		return fmt.Errorf("%w: %s: rewritten content has no copyright string", ErrInternalConsistency, path)
	}
	if !annotation.Covers(start, end) {
		return fmt.Errorf("%w: %s: rewritten copyright string %q does not cover %s", ErrInternalConsistency, path, annotation.Text, FormatYears(start, end))
	}
	return nil
}

func writeFileAtomic(path string, content []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
