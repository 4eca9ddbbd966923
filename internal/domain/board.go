package domain

// Board groups tasks into kanban columns keyed by status.
type Board struct {
	Columns []BoardColumn
}

type BoardColumn struct {
	Status TaskStatus
	Tasks  []Task
}

// GroupByStatus builds a board with one column per status in TaskStatuses
// order. Tasks keep their relative order within a column.
func GroupByStatus(tasks []Task) Board {
	b := Board{Columns: make([]BoardColumn, len(TaskStatuses))}
	index := make(map[TaskStatus]int, len(TaskStatuses))
	for i, s := range TaskStatuses {
		b.Columns[i] = BoardColumn{Status: s}
		index[s] = i
	}
	for _, t := range tasks {
		i, ok := index[t.Status]
		if !ok {
			continue
		}
		b.Columns[i].Tasks = append(b.Columns[i].Tasks, t)
	}
	return b
}

// Column returns the column for status, or an empty column if unknown.
func (b Board) Column(status TaskStatus) BoardColumn {
	for _, c := range b.Columns {
		if c.Status == status {
			return c
		}
	}
	return BoardColumn{Status: status}
}

// NextStatus returns the status of the column after s, and false at the last column.
func NextStatus(s TaskStatus) (TaskStatus, bool) {
	for i, v := range TaskStatuses {
		if v == s && i+1 < len(TaskStatuses) {
			return TaskStatuses[i+1], true
		}
	}
	return s, false
}

// PrevStatus returns the status of the column before s, and false at the first column.
func PrevStatus(s TaskStatus) (TaskStatus, bool) {
	for i, v := range TaskStatuses {
		if v == s && i > 0 {
			return TaskStatuses[i-1], true
		}
	}
	return s, false
}
