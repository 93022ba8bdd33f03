package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "kitchenpos/internal/adapters/out/postgres"
	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/core/ports"
	"kitchenpos/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var baseTime = time.Date(2025, time.March, 7, 18, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.AutoMigrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, promo_state").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	table, err := order.NewTable("8")
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), baseTime, table,
		[]order.LineItem{{ProductID: "tonkotsu", Name: "Tonkotsu", Qty: 1, UnitPrice: 150}},
		order.Totals{Subtotal: 150, Total: 150}, "", order.Promo{Type: "2x1", Timestamp: baseTime})
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "Rollback after commit has nothing to do")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersists() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.PromoStateRepository().Save(ctx, promo.NewState(true, baseTime)))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Snapshot(), loaded.Snapshot())

	state, err := suite.factory.Create().PromoStateRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.True(state.ManualOverrideEnabled)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscards() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUnitOfWork_GetLocksRow checks that a second transaction reading the same order
// waits until the first one commits, and then sees its write.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetLocksRow() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	locked, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	type result struct {
		status order.Status
		err    error
	}
	done := make(chan result, 1)
	go func() {
		second := suite.factory.Create()
		if beginErr := second.Begin(ctx); beginErr != nil {
			done <- result{err: beginErr}
			return
		}
		defer func() { _ = second.Rollback(ctx) }()
		seen, getErr := second.OrderRepository().Get(ctx, o.ID())
		if getErr != nil {
			done <- result{err: getErr}
			return
		}
		done <- result{status: seen.Status()}
	}()

	select {
	case <-done:
		suite.Fail("second transaction read a locked row")
	case <-time.After(200 * time.Millisecond):
	}

	_, err = locked.ChangeStatus(order.Preparing, order.TransitionMeta{}, baseTime)
	suite.Require().NoError(err)
	suite.Require().NoError(first.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(first.Commit(ctx))

	select {
	case r := <-done:
		suite.Require().NoError(r.err)
		suite.Equal(order.Preparing, r.status)
	case <-time.After(5 * time.Second):
		suite.Fail("second transaction never acquired the row")
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
