package fulfillment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/usecase/generation"
	coremocks "github.com/amirhossein-jamali/headshot-service/mocks/port/core"
	gatewaymocks "github.com/amirhossein-jamali/headshot-service/mocks/port/gateway"
	persistencemocks "github.com/amirhossein-jamali/headshot-service/mocks/port/persistence"
)

var fixedTime = time.Date(2025, 5, 10, 14, 30, 0, 0, time.UTC)

type txKey struct{}

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

type fixture struct {
	ctx           context.Context
	txCtx         context.Context
	uow           *persistencemocks.MockUnitOfWork
	generations   *persistencemocks.MockGenerationRepository
	txGenerations *persistencemocks.MockGenerationRepository
	orders        *persistencemocks.MockOrderRepository
	users         *persistencemocks.MockUserRepository
	payments      *gatewaymocks.MockPaymentGateway
	dispatcher    *recordingDispatcher
	service       *Service
}

func newFixture(t *testing.T) *fixture {
	logger := coremocks.NewMockLogger(t)
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		logger.On(method, mock.Anything, mock.Anything).Maybe()
	}
	logger.On("With", mock.Anything).Return(logger).Maybe()

	timeProvider := coremocks.NewMockTimeProvider(t)
	timeProvider.On("Now").Return(fixedTime).Maybe()

	ctx := context.Background()
	f := &fixture{
		ctx:           ctx,
		txCtx:         context.WithValue(ctx, txKey{}, "tx"),
		uow:           persistencemocks.NewMockUnitOfWork(t),
		generations:   persistencemocks.NewMockGenerationRepository(t),
		txGenerations: persistencemocks.NewMockGenerationRepository(t),
		orders:        persistencemocks.NewMockOrderRepository(t),
		users:         persistencemocks.NewMockUserRepository(t),
		payments:      gatewaymocks.NewMockPaymentGateway(t),
		dispatcher:    &recordingDispatcher{},
	}
	f.service = NewService(
		f.uow,
		f.generations,
		f.users,
		f.payments,
		generation.NewOptionsValidator(),
		f.dispatcher,
		timeProvider,
		logger,
		DefaultCheckoutSettings("https://headshots.example.com/"),
	)
	return f
}

// expectTransaction wires the unit of work to the transactional repositories
func (f *fixture) expectTransaction(commit bool) {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil).Once()
	f.uow.On("GetOrderRepository", f.txCtx).Return(f.orders).Maybe()
	f.uow.On("GetGenerationRepository", f.txCtx).Return(f.txGenerations).Maybe()
	if commit {
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
	} else {
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()
	}
}
