package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddispatch/internal/adapters/out/postgres"
	"fooddispatch/internal/adapters/out/postgres/courierrepo"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"
	"fooddispatch/internal/pkg/pgtest"

	"github.com/stretchr/testify/suite"
)

type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.pg = pg

	suite.Require().NoError(postgres.Migrate(ctx, pg.DB))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("couriers"))
	suite.repository = courierrepo.NewGormCourierRepository(suite.pg.DB)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	c, err := courier.NewCourier("Bob")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(c.ID(), got.ID())
	suite.Equal("Bob", got.Name())
	suite.True(got.IsActive())
	suite.Equal(0, got.CurrentLoad())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_InactiveCourierKeepsFlag() {
	ctx := context.Background()
	c := suite.restore("Idle", false, 0, time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.False(got.IsActive())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsLoadAndActivity() {
	ctx := context.Background()
	c, err := courier.NewCourier("Bob")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	suite.Require().NoError(c.TakeOrder())
	suite.Require().NoError(c.TakeOrder())
	c.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, c))

	got, err := suite.repository.GetForUpdate(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(2, got.CurrentLoad())
	suite.False(got.IsActive())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_UnknownCourier() {
	c, err := courier.NewCourier("Ghost")
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), c)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_UnknownCourier() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetLeastLoadedActive_Ordering() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	busy := suite.restore("Busy", true, 3, base)
	inactive := suite.restore("Inactive", false, 0, base)
	older := suite.restore("Older", true, 1, base.Add(time.Minute))
	younger := suite.restore("Younger", true, 1, base.Add(2*time.Minute))

	for _, c := range []*courier.Courier{busy, inactive, younger, older} {
		suite.Require().NoError(suite.repository.Add(ctx, c))
	}

	got, err := suite.repository.GetLeastLoadedActive(ctx)
	suite.Require().NoError(err)
	suite.Equal(older.ID(), got.ID())

	suite.Require().NoError(older.TakeOrder())
	suite.Require().NoError(suite.repository.Update(ctx, older))

	got, err = suite.repository.GetLeastLoadedActive(ctx)
	suite.Require().NoError(err)
	suite.Equal(younger.ID(), got.ID())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetLeastLoadedActive_NoneActive() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.restore("Off", false, 0, time.Now())))

	_, err := suite.repository.GetLeastLoadedActive(ctx)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestCheckConstraint_RejectsNegativeLoad() {
	c, err := courier.NewCourier("Bob")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), c))

	err = suite.pg.DB.Exec("UPDATE couriers SET current_load = -1 WHERE id = ?", c.ID().Value()).Error
	suite.Require().Error(err)
}

func (suite *CourierRepositoryIntegrationTestSuite) restore(name string, active bool, load int, createdAt time.Time) *courier.Courier {
	c, err := courier.RestoreCourier(kernel.NewUUID(), name, active, load, createdAt)
	suite.Require().NoError(err)
	return c
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
