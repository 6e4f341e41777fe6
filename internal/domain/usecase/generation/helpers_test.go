package generation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	coremocks "github.com/amirhossein-jamali/headshot-service/mocks/port/core"
)

func newTestLogger(t *testing.T) *coremocks.MockLogger {
	logger := coremocks.NewMockLogger(t)
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		logger.On(method, mock.Anything, mock.Anything).Maybe()
	}
	logger.On("With", mock.Anything).Return(logger).Maybe()
	return logger
}

type recordingDispatcher struct {
	mu     sync.Mutex
	reject bool
	ids    []uint64
}

func (d *recordingDispatcher) Dispatch(generationID uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.reject {
		return false
	}
	d.ids = append(d.ids, generationID)
	return true
}

func (d *recordingDispatcher) dispatched() []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]uint64(nil), d.ids...)
}
