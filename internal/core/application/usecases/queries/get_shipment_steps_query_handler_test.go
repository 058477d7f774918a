package queries_test

import (
	"context"
	"testing"
	"time"

	"shiptrack/internal/adapters/out/postgres/shipmentrepo"
	"shiptrack/internal/adapters/out/postgres/steprepo"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/core/domain/services/workflow"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetShipmentStepsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetShipmentStepsQueryHandler
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&steprepo.StepDTO{},
	)
	suite.Require().NoError(err)

	workflows, err := workflow.NewDefaultRegistry()
	suite.Require().NoError(err)

	suite.handler = queries.NewGetShipmentStepsQueryHandler(db, workflows)
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments, steps").Error
	suite.Require().NoError(err)
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) TestHandle_UnknownShipment_ReturnsEmpty() {
	query, err := queries.NewGetShipmentStepsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result.Steps)
	suite.Nil(result.CurrentLane)
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) TestHandle_OrdersStepsAndDecodesFields() {
	shipmentID := suite.createShipment(workflow.CodeImportClearance)

	suite.addStep(shipmentID, 1, "discharge", fieldtree.New())
	suite.addStep(shipmentID, 0, "container_manifest", fieldtree.Tree{
		"containers": []any{map[string]any{"container_no": "MSKU100"}},
	})

	query, err := queries.NewGetShipmentStepsQuery(shipmentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Steps, 2)
	suite.Equal("container_manifest", result.Steps[0].Name)
	suite.Equal("discharge", result.Steps[1].Name)
	suite.Equal("MSKU100", result.Steps[0].Fields.Row("containers", 0).String("container_no"))
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) TestHandle_RowChainWorkflow_HasNoLane() {
	shipmentID := suite.createShipment(workflow.CodeImportClearance)
	suite.addStep(shipmentID, 0, "container_manifest", fieldtree.New())

	query, err := queries.NewGetShipmentStepsQuery(shipmentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Nil(result.CurrentLane)
	suite.Require().Len(result.Steps, 1)
	suite.Nil(result.Steps[0].Stages)
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) TestHandle_CheckpointChain_ReportsActiveLane() {
	shipmentID := suite.createShipment(workflow.CodeMultiBorderExport)

	suite.addStep(shipmentID, 0, "origin_leg", fieldtree.Tree{
		"loading_done":        true,
		"export_customs_date": "2024-05-01",
		"border_exit_done":    true,
	})
	suite.addStep(shipmentID, 1, "transit_leg", fieldtree.Tree{
		"border_entry_done": true,
	})
	suite.addStep(shipmentID, 2, "destination_leg", fieldtree.New())

	query, err := queries.NewGetShipmentStepsQuery(shipmentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.CurrentLane)
	suite.Equal("transit", *result.CurrentLane)

	suite.Require().Len(result.Steps, 3)
	suite.Equal([]queries.StepStageView{
		{Name: "loading", Status: step.Done.String()},
		{Name: "export_customs", Status: step.Done.String()},
		{Name: "border_exit", Status: step.Done.String()},
	}, result.Steps[0].Stages)
	suite.Equal([]queries.StepStageView{
		{Name: "border_entry", Status: step.Done.String()},
		{Name: "transit_customs", Status: step.Pending.String()},
		{Name: "border_exit", Status: step.Pending.String()},
	}, result.Steps[1].Stages)
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) TestHandle_CheckpointChain_UntouchedStartsAtFirstLane() {
	shipmentID := suite.createShipment(workflow.CodeMultiBorderExport)

	suite.addStep(shipmentID, 0, "origin_leg", fieldtree.New())
	suite.addStep(shipmentID, 1, "transit_leg", fieldtree.New())
	suite.addStep(shipmentID, 2, "destination_leg", fieldtree.New())

	query, err := queries.NewGetShipmentStepsQuery(shipmentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.CurrentLane)
	suite.Equal("origin", *result.CurrentLane)
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetShipmentStepsQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetShipmentStepsQuery constructor")
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) createShipment(workflowCode string) kernel.UUID {
	id := kernel.NewUUID()
	dto := shipmentrepo.ShipmentDTO{
		ID:            id.Bytes(),
		WorkflowCode:  workflowCode,
		OwnerUserID:   kernel.NewUUID().Bytes(),
		OverallStatus: shipment.Created.String(),
		Risk:          shipment.OnTrack.String(),
		UpdatedAt:     time.Now().UTC(),
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
	return id
}

func (suite *GetShipmentStepsQueryHandlerTestSuite) addStep(
	shipmentID kernel.UUID,
	sequenceIndex int,
	name string,
	fields fieldtree.Tree,
) {
	dto := steprepo.StepDTO{
		ID:            kernel.NewUUID().Bytes(),
		ShipmentID:    shipmentID.Bytes(),
		SequenceIndex: sequenceIndex,
		Name:          name,
		OwnerRole:     "ops",
		Status:        step.Pending.String(),
		Fields:        fields,
		FieldSchema:   fieldtree.New(),
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
}

func TestGetShipmentStepsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShipmentStepsQueryHandlerTestSuite))
}
