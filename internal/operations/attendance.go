package operations

import (
	"context"

	"attendancehub/internal/model"
	"attendancehub/internal/store"
)

type AttendanceEntry struct {
	MemberID string `json:"memberId" validate:"required"`
	Status   string `json:"status"`
}

// SaveAttendanceInput replaces a whole day. Records must be present but may be
// empty, which clears the day.
type SaveAttendanceInput struct {
	Records  []AttendanceEntry `json:"records" validate:"required,dive"`
	Date     string            `json:"date" validate:"required"`
	MarkedBy string            `json:"markedBy"`
}

func (s *Service) ListAttendance(ctx context.Context, filter store.AttendanceFilter) ([]model.MemberAttendance, error) {
	list, err := s.store.ListAttendance(ctx, filter)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *Service) SaveAttendance(ctx context.Context, in SaveAttendanceInput) ([]model.AttendanceRecord, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	ts := s.timestamp()
	records := make([]model.AttendanceRecord, 0, len(in.Records))
	index := make(map[string]int, len(in.Records))
	for _, entry := range in.Records {
		rec := model.AttendanceRecord{
			ID:        model.AttendanceID(entry.MemberID, in.Date),
			MemberID:  entry.MemberID,
			Date:      in.Date,
			Status:    model.NormalizeAttendanceStatus(entry.Status),
			MarkedBy:  in.MarkedBy,
			Timestamp: ts,
		}
		// a repeated member keeps its first position with the last status
		if i, ok := index[entry.MemberID]; ok {
			records[i] = rec
			continue
		}
		index[entry.MemberID] = len(records)
		records = append(records, rec)
	}

	if err := s.store.ReplaceAttendanceDay(ctx, in.Date, records); err != nil {
		return nil, storeError(err)
	}
	s.recorder.AttendanceSaved(len(records))
	return records, nil
}
