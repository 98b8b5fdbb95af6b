package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jusunglee/railmap-go/internal/models"
)

const utf8BOM = "\uFEFF"

// Transactions reads the ticket CSV. Rows with a blank station or
// transaction ID are skipped and counted.
func (l *Loader) Transactions(ctx context.Context, path string) ([]models.Transaction, int, error) {
	rc, err := l.open(ctx, path)
	if err != nil {
		return nil, 0, &SourceError{Kind: KindTransactions, Path: path, Err: err}
	}
	defer rc.Close()

	txs, skipped, err := l.parseTransactions(rc)
	if err != nil {
		return nil, 0, &SourceError{Kind: KindTransactions, Path: path, Err: err}
	}
	return txs, skipped, nil
}

func (l *Loader) parseTransactions(r io.Reader) ([]models.Transaction, int, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("%w: empty file", ErrMalformed)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	idx, err := l.columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		txs     []models.Transaction
		skipped int
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		tx := models.Transaction{
			ID:               strings.TrimSpace(record[idx.id]),
			DepartureStation: strings.TrimSpace(record[idx.departure]),
			ArrivalStation:   strings.TrimSpace(record[idx.arrival]),
		}
		if tx.ID == "" || tx.DepartureStation == "" || tx.ArrivalStation == "" {
			skipped++
			continue
		}
		txs = append(txs, tx)
	}

	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, skipped, nil
}

type columnIndex struct {
	departure, arrival, id int
}

func (l *Loader) columnIndex(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		positions[strings.TrimSpace(name)] = i
	}

	lookup := func(name string) (int, error) {
		i, ok := positions[name]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		return i, nil
	}

	var (
		idx columnIndex
		err error
	)
	if idx.departure, err = lookup(l.columns.Departure); err != nil {
		return idx, err
	}
	if idx.arrival, err = lookup(l.columns.Arrival); err != nil {
		return idx, err
	}
	if idx.id, err = lookup(l.columns.ID); err != nil {
		return idx, err
	}
	return idx, nil
}
