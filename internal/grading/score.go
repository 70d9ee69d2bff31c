// Package grading scores student submissions against the answer key.
package grading

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/fraudgrade/internal/answerkey"
	"github.com/abhisek/fraudgrade/internal/metrics"
	"github.com/abhisek/fraudgrade/internal/submission"
)

// Result is the graded outcome of one submission.
type Result struct {
	Student            string
	OverallAccuracy    float64
	ROCAUC             float64
	FraudAccuracy      float64
	NetFinancialImpact float64
	SubmissionFile     string

	// Order is the submission's position in discovery order.
	Order    int
	JoinMode JoinMode
	Records  []Record
}

// SkipKind classifies why a submission was left out of the results.
type SkipKind string

const (
	SkipRead          SkipKind = "read"
	SkipMissingColumn SkipKind = "missing_column"
	SkipJoin          SkipKind = "join"
	SkipInternal      SkipKind = "internal"
)

// Reason describes a skipped submission.
type Reason struct {
	Kind    SkipKind
	Student string
	File    string
	Err     error
}

// Message is the line shown to the user for this skip.
func (r Reason) Message() string {
	if r.Kind == SkipMissingColumn {
		return fmt.Sprintf("Error: %s's submission missing IsFraud column", r.Student)
	}
	return fmt.Sprintf("Error processing %s: %v", r.File, r.Err)
}

// Outcome is either a Result or the Reason the submission was skipped.
type Outcome struct {
	Result  *Result
	Skipped *Reason
}

// OK reports whether the submission was graded.
func (o Outcome) OK() bool {
	return o.Result != nil
}

// Score loads and grades the submission at path. It never panics and never
// returns an error: every failure is reported as a skipped Outcome.
func Score(key *answerkey.AnswerKey, path string) (out Outcome) {
	student := submission.StudentFromPath(path)
	skip := func(kind SkipKind, err error) Outcome {
		return Outcome{Skipped: &Reason{Kind: kind, Student: student, File: path, Err: err}}
	}

	defer func() {
		if r := recover(); r != nil {
			out = skip(SkipInternal, fmt.Errorf("panic: %v", r))
		}
	}()

	sub, err := submission.Load(path)
	switch {
	case errors.Is(err, submission.ErrMissingIsFraud):
		return skip(SkipMissingColumn, err)
	case err != nil:
		return skip(SkipRead, err)
	}

	// Column selection and date normalisation of the key happen as part of
	// the join, so a malformed key is reported per submission.
	res, err := Grade(key, sub)
	if err != nil {
		return skip(SkipJoin, err)
	}
	return Outcome{Result: res}
}

// Grade scores an in-memory submission. An answer key whose rows failed to
// parse fails every submission.
func Grade(key *answerkey.AnswerKey, sub *submission.Submission) (*Result, error) {
	if key.Err != nil {
		return nil, fmt.Errorf("answer key %s: %w", key.Path, key.Err)
	}
	recs, mode, err := Join(key, sub)
	if err != nil {
		return nil, err
	}

	SortByDate(recs)
	net := ApplyFinancials(recs)

	truth := make([]int, len(recs))
	pred := make([]int, len(recs))
	for i, r := range recs {
		truth[i] = r.True
		pred[i] = r.Pred
	}

	return &Result{
		Student:            sub.Student,
		OverallAccuracy:    metrics.Accuracy(truth, pred),
		ROCAUC:             metrics.BinaryROCAUC(truth, pred),
		FraudAccuracy:      metrics.FraudRecall(metrics.NewConfusion(truth, pred)),
		NetFinancialImpact: net,
		SubmissionFile:     sub.Path,
		JoinMode:           mode,
		Records:            recs,
	}, nil
}

// Batch collects the outcomes of a grading run in discovery order.
type Batch struct {
	Results []Result
	Skipped []Reason
}

// Grader runs Score over a list of submissions, one at a time.
type Grader struct {
	key *answerkey.AnswerKey
	log *zap.Logger
}

// NewGrader returns a Grader for key. A nil logger disables diagnostics.
func NewGrader(key *answerkey.AnswerKey, log *zap.Logger) *Grader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Grader{key: key, log: log}
}

// Run grades every path in order. A failing submission is recorded in
// Batch.Skipped and never stops the run.
func (g *Grader) Run(paths []string) Batch {
	var b Batch
	for i, p := range paths {
		out := Score(g.key, p)
		if !out.OK() {
			g.log.Info("submission skipped",
				zap.String("file", p),
				zap.String("student", out.Skipped.Student),
				zap.String("kind", string(out.Skipped.Kind)),
				zap.Error(out.Skipped.Err),
			)
			b.Skipped = append(b.Skipped, *out.Skipped)
			continue
		}

		res := *out.Result
		res.Order = i
		g.log.Debug("submission graded",
			zap.String("file", p),
			zap.String("student", res.Student),
			zap.String("join", string(res.JoinMode)),
			zap.Int("rows", len(res.Records)),
			zap.Float64("net_financial_impact", res.NetFinancialImpact),
		)
		b.Results = append(b.Results, res)
	}
	return b
}
