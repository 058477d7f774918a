package cmd

import (
	"shiptrack/internal/adapters/out/postgres"
	"shiptrack/internal/adapters/out/postgres/userrepo"
	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/services/workflow"
	"shiptrack/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	workflows  *workflow.Registry
	directory  ports.UserDirectory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) (CompositionRoot, error) {
	workflows, err := workflow.NewDefaultRegistry()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		workflows:  workflows,
		directory:  userrepo.NewGormUserDirectory(gormDB),
	}, nil
}

func (c *CompositionRoot) ShipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.workflows)
}

func (c *CompositionRoot) CreateUpdateStepCommandHandler() commands.UpdateStepCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateStepCommandHandler(f, c.workflows, c.directory)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.ShipmentUoWFactory())
}

func (c *CompositionRoot) CreateLinkShipmentsCommandHandler() commands.LinkShipmentsCommandHandler {
	return commands.NewLinkShipmentsCommandHandler(c.ShipmentUoWFactory())
}

func (c *CompositionRoot) CreateRaiseExceptionCommandHandler() commands.RaiseExceptionCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRaiseExceptionCommandHandler(f, c.directory)
}

func (c *CompositionRoot) CreateResolveExceptionCommandHandler() commands.ResolveExceptionCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveExceptionCommandHandler(f, c.directory)
}

func (c *CompositionRoot) CreateRefreshShipmentStatusCommandHandler() commands.RefreshShipmentStatusCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshShipmentStatusCommandHandler(f, c.directory)
}

func (c *CompositionRoot) CreateReceiveLotCommandHandler() commands.ReceiveLotCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveLotCommandHandler(f)
}

func (c *CompositionRoot) CreateAllocateGoodsCommandHandler() commands.AllocateGoodsCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateGoodsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetShipmentBoardQueryHandler() queries.GetShipmentBoardQueryHandler {
	return queries.NewGetShipmentBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentStepsQueryHandler() queries.GetShipmentStepsQueryHandler {
	return queries.NewGetShipmentStepsQueryHandler(c.gormDB, c.workflows)
}

func (c *CompositionRoot) CreateGetLotBalancesQueryHandler() queries.GetLotBalancesQueryHandler {
	return queries.NewGetLotBalancesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserAlertsQueryHandler() queries.GetUserAlertsQueryHandler {
	return queries.NewGetUserAlertsQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}
