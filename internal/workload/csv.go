package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cpu-scheduler-sim/internal/core"
)

var ErrInvalidRow = errors.New("invalid process row")

// LoadProcesses reads rows of id,burst,arrival[,priority]. Blank lines, lines
// starting with '#' and a leading header row are skipped. The result is
// validated before it is returned.
func LoadProcesses(r io.Reader) ([]core.Process, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	processes := make([]core.Process, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) < 3 || len(row) > 4 {
			return nil, fmt.Errorf("%w %d: want 3 or 4 fields, got %d", ErrInvalidRow, i+1, len(row))
		}
		fields := make([]int, 4)
		for j := range row {
			if fields[j], err = strconv.Atoi(strings.TrimSpace(row[j])); err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrInvalidRow, i+1, err)
			}
		}
		processes = append(processes, core.NewProcess(fields[0], fields[2], fields[1], fields[3]))
	}

	if err := core.Validate(processes); err != nil {
		return nil, err
	}
	return processes, nil
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}
