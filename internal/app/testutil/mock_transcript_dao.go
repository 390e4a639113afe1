package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// MockTranscriptDAO is an in-memory repository.TranscriptDAO with
// per-method failure injection and call tracking.
type MockTranscriptDAO struct {
	mu sync.Mutex

	rows   map[int64]*model.Transcript
	nextID int64
	clock  func() time.Time

	// ErrorMap makes the named method (e.g. "Update") fail with the error
	ErrorMap map[string]error
	// ZeroID makes CreatePlaceholder succeed without producing an id
	ZeroID bool

	CallHistory []DAOCall
	Updates     []UpdateCall
}

// DAOCall represents a single DAO method call for tracking
type DAOCall struct {
	Method string
	ID     int64
	Error  error
}

// UpdateCall records the arguments of one Update call
type UpdateCall struct {
	ID     int64
	Update model.TranscriptUpdate
}

// NewMockTranscriptDAO creates an empty store whose ids start at 1
func NewMockTranscriptDAO() *MockTranscriptDAO {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	return &MockTranscriptDAO{
		rows:     make(map[int64]*model.Transcript),
		nextID:   1,
		ErrorMap: make(map[string]error),
		clock: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

// Seed stores rows as they are, keeping their ids
func (m *MockTranscriptDAO) Seed(rows ...model.Transcript) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range rows {
		row := rows[i]
		m.rows[row.ID] = &row
		if row.ID >= m.nextID {
			m.nextID = row.ID + 1
		}
	}
}

// Row returns a copy of the stored row
func (m *MockTranscriptDAO) Row(id int64) (model.Transcript, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return model.Transcript{}, false
	}
	return *row, true
}

// Len returns the number of stored rows
func (m *MockTranscriptDAO) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// Calls returns the names of the methods called so far, in order
func (m *MockTranscriptDAO) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.CallHistory))
	for i, c := range m.CallHistory {
		names[i] = c.Method
	}
	return names
}

func (m *MockTranscriptDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.track("Close", 0)
}

func (m *MockTranscriptDAO) CreatePlaceholder(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.track("CreatePlaceholder", 0); err != nil {
		return 0, err
	}
	if m.ZeroID {
		return 0, nil
	}

	id := m.nextID
	m.nextID++
	m.rows[id] = &model.Transcript{
		ID:        id,
		Status:    model.StatusProcessing,
		CreatedAt: m.clock(),
	}
	return id, nil
}

func (m *MockTranscriptDAO) Update(ctx context.Context, id int64, update model.TranscriptUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Updates = append(m.Updates, UpdateCall{ID: id, Update: update})
	if err := m.track("Update", id); err != nil {
		return err
	}

	row, ok := m.rows[id]
	if !ok || !row.Status.CanTransitionTo(update.Status) {
		return apperrors.Wrapf(apperrors.ErrUpdateFailed, "transcript %d is missing or no longer processing", id)
	}

	row.Text = update.Text
	row.Status = update.Status
	if update.AudioURL != nil {
		url := *update.AudioURL
		row.AudioURL = &url
	}
	return nil
}

func (m *MockTranscriptDAO) GetByID(ctx context.Context, id int64) (*model.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.track("GetByID", id); err != nil {
		return nil, err
	}

	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.NotFound(id)
	}
	out := *row
	return &out, nil
}

func (m *MockTranscriptDAO) List(ctx context.Context) ([]model.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.track("List", 0); err != nil {
		return nil, err
	}

	out := make([]model.Transcript, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockTranscriptDAO) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.track("Delete", id); err != nil {
		return err
	}

	if _, ok := m.rows[id]; !ok {
		return apperrors.NotFound(id)
	}
	delete(m.rows, id)
	return nil
}

// track must be called with mu held
func (m *MockTranscriptDAO) track(method string, id int64) error {
	err := m.ErrorMap[method]
	m.CallHistory = append(m.CallHistory, DAOCall{Method: method, ID: id, Error: err})
	return err
}
