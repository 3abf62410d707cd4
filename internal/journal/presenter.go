package journal

import "time"

// Row is the renderable content of one list row.
type Row struct {
	Body string    `json:"body"`
	Date time.Time `json:"date"`
}

// Presenter projects an EntryLog into list rows. It holds no state and never
// mutates the log.
type Presenter struct{}

// RowCount returns the number of rows to render
func (Presenter) RowCount(log *EntryLog) int {
	return log.Count()
}

// RowContent returns the row for the entry at index.
func (Presenter) RowContent(log *EntryLog, index int) (Row, error) {
	entry, err := log.At(index)
	if err != nil {
		return Row{}, err
	}
	return Row{Body: entry.Body(), Date: entry.Date()}, nil
}

// ScrollTargetIndex returns the index to bring into view after an append,
// which is the last row.
func (Presenter) ScrollTargetIndex(log *EntryLog) (int, error) {
	if log.Count() == 0 {
		return 0, ErrEmptyLog
	}
	return log.Count() - 1, nil
}

// Rows returns every row in append order.
func (Presenter) Rows(log *EntryLog) []Row {
	entries := log.Entries()
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Body: e.Body(), Date: e.Date()}
	}
	return rows
}
