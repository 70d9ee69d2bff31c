package grading

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/abhisek/fraudgrade/internal/answerkey"
	"github.com/abhisek/fraudgrade/internal/submission"
)

var (
	// ErrNoMatchingRows is returned when the join leaves nothing to grade.
	ErrNoMatchingRows = errors.New("no submission rows matched the answer key")

	// ErrShortSubmission is returned by a positional join when the
	// submission has fewer rows than the answer key.
	ErrShortSubmission = errors.New("submission has fewer rows than the answer key")

	// ErrKeyHasNoIDs is returned when the submission is keyed by
	// TransactionID but the answer key carries no ids to match against.
	ErrKeyHasNoIDs = errors.New("answer key has no TransactionID column")
)

// JoinMode records how submission rows were paired with the answer key.
type JoinMode string

const (
	JoinByID       JoinMode = "transaction_id"
	JoinPositional JoinMode = "positional"
)

// Join pairs every answer key transaction with its prediction.
//
// When the submission carries TransactionID the join is an inner join on the
// id: rows come out in answer key order, duplicates pair with every match in
// submission order, and rows without a counterpart are dropped. Otherwise row
// i of the key pairs with row i of the submission and surplus submission rows
// are ignored.
func Join(key *answerkey.AnswerKey, sub *submission.Submission) ([]Record, JoinMode, error) {
	var (
		recs []Record
		mode JoinMode
		err  error
	)
	if sub.HasID {
		mode = JoinByID
		recs, err = joinByID(key, sub)
	} else {
		mode = JoinPositional
		recs, err = joinPositional(key, sub)
	}
	if err != nil {
		return nil, mode, err
	}
	if len(recs) == 0 {
		return nil, mode, ErrNoMatchingRows
	}
	return recs, mode, nil
}

func joinByID(key *answerkey.AnswerKey, sub *submission.Submission) ([]Record, error) {
	if !key.HasID {
		return nil, ErrKeyHasNoIDs
	}

	preds := make(map[string][]int, sub.Len())
	for _, l := range sub.Labels {
		id := normalizeID(l.TransactionID)
		preds[id] = append(preds[id], l.IsFraud)
	}

	var recs []Record
	for _, tx := range key.Transactions {
		for _, p := range preds[normalizeID(tx.ID)] {
			recs = append(recs, newRecord(tx, p))
		}
	}
	return recs, nil
}

func joinPositional(key *answerkey.AnswerKey, sub *submission.Submission) ([]Record, error) {
	if sub.Len() < key.Len() {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortSubmission, sub.Len(), key.Len())
	}

	recs := make([]Record, key.Len())
	for i, tx := range key.Transactions {
		recs[i] = newRecord(tx, sub.Labels[i].IsFraud)
	}
	return recs, nil
}

func newRecord(tx answerkey.Transaction, pred int) Record {
	return Record{
		TransactionID: tx.ID,
		True:          tx.IsFraud,
		Pred:          pred,
		Amount:        tx.Amount,
		Date:          tx.Date,
	}
}

// normalizeID makes "7", "07" and "7.0" compare equal. Integer ids are
// compared exactly at any length; other numbers go through float64, and
// non-numeric ids are compared verbatim after trimming.
func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if n, ok := new(big.Int).SetString(id, 10); ok {
		return n.String()
	}
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return id
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
