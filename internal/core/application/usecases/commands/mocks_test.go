package commands_test

import (
	"context"
	"errors"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/alert"
	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockStepRepository struct{ mock.Mock }

func (m *MockStepRepository) Add(ctx context.Context, s *step.Step) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockStepRepository) Update(ctx context.Context, s *step.Step) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockStepRepository) Get(ctx context.Context, id kernel.UUID) (*step.Step, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*step.Step), args.Error(1)
}
func (m *MockStepRepository) GetAllByShipmentID(ctx context.Context, shipmentID kernel.UUID) ([]*step.Step, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*step.Step), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetActiveIDs(_ context.Context) ([]kernel.UUID, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockShipmentRepository) AddException(ctx context.Context, e *shipment.Exception) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockShipmentRepository) UpdateException(ctx context.Context, e *shipment.Exception) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockShipmentRepository) GetException(ctx context.Context, id kernel.UUID) (*shipment.Exception, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Exception), args.Error(1)
}
func (m *MockShipmentRepository) GetOpenExceptions(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Exception, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Exception), args.Error(1)
}
func (m *MockShipmentRepository) AddLink(ctx context.Context, link shipment.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}
func (m *MockShipmentRepository) GetLinkedShipmentIDs(ctx context.Context, shipmentID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) AddLot(ctx context.Context, lot *inventory.GoodsLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}
func (m *MockInventoryRepository) GetLot(ctx context.Context, id kernel.UUID) (*inventory.GoodsLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.GoodsLot), args.Error(1)
}
func (m *MockInventoryRepository) GetAllocatedQuantity(ctx context.Context, lotID kernel.UUID) (int, error) {
	args := m.Called(ctx, lotID)
	return args.Int(0), args.Error(1)
}
func (m *MockInventoryRepository) HasAllocation(ctx context.Context, lotID, stepID kernel.UUID) (bool, error) {
	args := m.Called(ctx, lotID, stepID)
	return args.Bool(0), args.Error(1)
}
func (m *MockInventoryRepository) AddAllocation(ctx context.Context, a *inventory.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockInventoryRepository) AddLedgerEntry(ctx context.Context, e *inventory.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockInventoryRepository) HasInEntry(ctx context.Context, lotID kernel.UUID) (bool, error) {
	args := m.Called(ctx, lotID)
	return args.Bool(0), args.Error(1)
}
func (m *MockInventoryRepository) GetBalance(_ context.Context, _, _ kernel.UUID) (inventory.Balance, error) {
	return inventory.Balance{}, errors.New("not implemented in mock")
}

type MockAlertRepository struct{ mock.Mock }

func (m *MockAlertRepository) Upsert(ctx context.Context, alerts []alert.Alert) error {
	args := m.Called(ctx, alerts)
	return args.Error(0)
}
func (m *MockAlertRepository) GetAllByUserID(_ context.Context, _ kernel.UUID) ([]alert.Alert, error) {
	return nil, errors.New("not implemented in mock")
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) GetUserIDsByRole(ctx context.Context, role string) ([]kernel.UUID, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}
func (m *MockUserDirectory) GetAdminUserIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockTrackingUoW struct{ mock.Mock }

func (m *MockTrackingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTrackingUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}
func (m *MockTrackingUoW) StepRepository() ports.StepRepository {
	args := m.Called()
	return args.Get(0).(ports.StepRepository)
}
func (m *MockTrackingUoW) AlertRepository() ports.AlertRepository {
	args := m.Called()
	return args.Get(0).(ports.AlertRepository)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockInventoryUoW struct{ mock.Mock }

func (m *MockInventoryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockInventoryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockInventoryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockInventoryUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}
func (m *MockInventoryUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}
func (m *MockInventoryUoW) StepRepository() ports.StepRepository {
	args := m.Called()
	return args.Get(0).(ports.StepRepository)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}
