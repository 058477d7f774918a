package commands_test

import (
	"testing"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services/workflow"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), workflow.CodeImportClearance, kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	stepRepo := new(MockStepRepository)
	shipRepo := new(MockShipmentRepository)
	uow := new(MockTrackingUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipRepo).Once()
	uow.On("StepRepository").Return(stepRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	shipRepo.On("Add", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.Overall() == shipment.Created && s.Risk() == shipment.OnTrack
	})).Return(nil).Once()

	// One step per template entry, in sequence order.
	stepRepo.On("Add", ctx, mock.AnythingOfType("*step.Step")).Return(nil).Times(6)

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, defaultWorkflows(t))
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	shipRepo.AssertExpectations(t)
	stepRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_UnknownWorkflow(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), "warehouse_transfer", kernel.NewUUID(), nil)
	require.NoError(t, err)

	factory := new(MockTrackingUoWFactory)

	h := commands.NewCreateShipmentCommandHandler(factory, defaultWorkflows(t))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestNewCreateShipmentCommand_Validation(t *testing.T) {
	t.Run("empty workflow code", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(
			kernel.NewUUID(), "", kernel.NewUUID(), nil)
		require.ErrorIs(t, err, commands.ErrWorkflowCodeIsRequired)
	})

	t.Run("missing shipment id", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(
			kernel.UUID{}, workflow.CodeImportClearance, kernel.NewUUID(), nil)
		require.Error(t, err)
	})
}
