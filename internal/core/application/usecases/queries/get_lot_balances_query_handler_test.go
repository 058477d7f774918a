package queries_test

import (
	"context"
	"testing"
	"time"

	"shiptrack/internal/adapters/out/postgres/inventoryrepo"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetLotBalancesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetLotBalancesQueryHandler
}

func (suite *GetLotBalancesQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&inventoryrepo.GoodsLotDTO{}, &inventoryrepo.AllocationDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetLotBalancesQueryHandler(db)
}

func (suite *GetLotBalancesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetLotBalancesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE goods_lots, allocations").Error
	suite.Require().NoError(err)
}

func (suite *GetLotBalancesQueryHandlerTestSuite) TestHandle_NoLots_ReturnsEmptySlice() {
	query, err := queries.NewGetLotBalancesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetLotBalancesQueryHandlerTestSuite) TestHandle_SumsAllocationsPerLot() {
	owner := kernel.NewUUID()
	now := time.Now().UTC()

	// Oldest lot: 100 received, 60 + 20 allocated
	lotA := suite.addLot(owner, 100, now.Add(-2*time.Hour))
	suite.addAllocation(lotA, 60)
	suite.addAllocation(lotA, 20)

	// Newer lot: untouched
	lotB := suite.addLot(owner, 50, now.Add(-time.Hour))

	// Another owner's lot must not leak in
	suite.addLot(kernel.NewUUID(), 10, now)

	query, err := queries.NewGetLotBalancesQuery(owner)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.True(result[0].LotID.IsEqual(lotA), "Oldest lot comes first")
	suite.Equal(100, result[0].Quantity)
	suite.Equal(80, result[0].TakenQuantity)
	suite.Equal(20, result[0].Remaining)

	suite.True(result[1].LotID.IsEqual(lotB))
	suite.Equal(50, result[1].Quantity)
	suite.Equal(0, result[1].TakenQuantity)
	suite.Equal(50, result[1].Remaining)
}

func (suite *GetLotBalancesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetLotBalancesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetLotBalancesQuery constructor")
}

func (suite *GetLotBalancesQueryHandlerTestSuite) addLot(owner kernel.UUID, quantity int, createdAt time.Time) kernel.UUID {
	lotID := kernel.NewUUID()
	dto := inventoryrepo.GoodsLotDTO{
		ID:                    lotID.Bytes(),
		ShipmentID:            kernel.NewUUID().Bytes(),
		GoodID:                kernel.NewUUID().Bytes(),
		OwnerUserID:           owner.Bytes(),
		AppliesToAllCustomers: true,
		Quantity:              quantity,
		CreatedAt:             createdAt,
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
	return lotID
}

func (suite *GetLotBalancesQueryHandlerTestSuite) addAllocation(lotID kernel.UUID, taken int) {
	dto := inventoryrepo.AllocationDTO{
		ID:            kernel.NewUUID().Bytes(),
		LotID:         lotID.Bytes(),
		StepID:        kernel.NewUUID().Bytes(),
		TakenQuantity: taken,
		CreatedAt:     time.Now().UTC(),
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
}

func TestGetLotBalancesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetLotBalancesQueryHandlerTestSuite))
}
