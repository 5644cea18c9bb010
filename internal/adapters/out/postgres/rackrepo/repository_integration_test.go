package rackrepo_test

import (
	"context"
	"testing"
	"time"

	"warehouse/internal/adapters/out/postgres/rackrepo"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 9, 28, 10, 15, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

// RackRepositoryIntegrationTestSuite checks rack persistence on a real
// PostgreSQL, outside of any unit of work.
type RackRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *rackrepo.GormRackRepository
	sections   *rackrepo.GormSectionRepository
	tracker    *MockAggregateTracker
}

func (suite *RackRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&rackrepo.SectionDTO{}, &rackrepo.RackDTO{}))
}

func (suite *RackRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE racks, sections").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = rackrepo.NewGormRackRepository(suite.db, suite.tracker)
	suite.sections = rackrepo.NewGormSectionRepository(suite.db)
}

func (suite *RackRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RackRepositoryIntegrationTestSuite) newRack(section string, number, capacity int) *rack.Rack {
	id, err := rack.NewID(section, "", number)
	suite.Require().NoError(err)
	r, err := rack.NewRack(id, section, capacity, "pallet row", testNow)
	suite.Require().NoError(err)
	return r
}

func (suite *RackRepositoryIntegrationTestSuite) add(r *rack.Rack) {
	ctx := context.Background()
	suite.Require().NoError(suite.sections.Ensure(ctx, r.Section()))
	suite.tracker.On("TrackAggregate", r.ID().String(), r).Once()
	suite.Require().NoError(suite.repository.Add(ctx, r))
}

func (suite *RackRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresEveryField() {
	ctx := context.Background()
	original := suite.newRack("A", 1, 4)
	suite.add(original)

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), restored.ID())
	suite.Equal("A", restored.Section())
	suite.Equal(4, restored.Capacity())
	suite.Equal(0, restored.Occupancy())
	suite.Equal(rack.Available, restored.Status())
	suite.Equal("pallet row", restored.Description())
	suite.Equal(original.Version(), restored.Version())
	suite.True(original.CreatedAt().Equal(restored.CreatedAt()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RackRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsAlreadyExists() {
	suite.add(suite.newRack("A", 1, 4))

	err := suite.repository.Add(context.Background(), suite.newRack("A", 1, 2))
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.tracker.AssertNumberOfCalls(suite.T(), "TrackAggregate", 1)
}

func (suite *RackRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	id, err := rack.ParseID("Z-999")
	suite.Require().NoError(err)

	restored, err := suite.repository.Get(context.Background(), id)
	suite.Nil(restored)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *RackRepositoryIntegrationTestSuite) TestUpdate_Changes() {
	testCases := []struct {
		name   string
		change func(*rack.Rack)
		verify func(*rack.Rack)
	}{
		{
			name: "allocate until full",
			change: func(r *rack.Rack) {
				suite.Require().NoError(r.Allocate(testNow))
				suite.Require().NoError(r.Allocate(testNow))
			},
			verify: func(r *rack.Rack) {
				suite.Equal(2, r.Occupancy())
				suite.Equal(rack.Full, r.Status())
			},
		},
		{
			name:   "disable",
			change: func(r *rack.Rack) { r.Disable(testNow) },
			verify: func(r *rack.Rack) {
				suite.Equal(rack.Disabled, r.Status())
			},
		},
		{
			name: "grow capacity",
			change: func(r *rack.Rack) {
				suite.Require().NoError(r.UpdateCapacity(10, testNow))
			},
			verify: func(r *rack.Rack) {
				suite.Equal(10, r.Capacity())
			},
		},
	}

	ctx := context.Background()
	for i, tc := range testCases {
		suite.Run(tc.name, func() {
			original := suite.newRack("B", i+1, 2)
			suite.add(original)
			before := original.Version()

			tc.change(original)
			suite.tracker.On("TrackAggregate", original.ID().String(), original).Once()
			suite.Require().NoError(suite.repository.Update(ctx, original))
			suite.Equal(before+1, original.Version())

			restored, err := suite.repository.Get(ctx, original.ID())
			suite.Require().NoError(err)
			suite.Equal(original.Version(), restored.Version())
			tc.verify(restored)
		})
	}
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RackRepositoryIntegrationTestSuite) TestUpdate_StaleCopyIsRejected() {
	ctx := context.Background()
	original := suite.newRack("A", 1, 4)
	suite.add(original)

	first, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Allocate(testNow))
	suite.tracker.On("TrackAggregate", first.ID().String(), first).Once()
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Allocate(testNow))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(1, restored.Occupancy())
}

func (suite *RackRepositoryIntegrationTestSuite) TestListAllocatable_SkipsFullAndDisabled() {
	ctx := context.Background()
	free := suite.newRack("A", 1, 1)
	full := suite.newRack("A", 2, 1)
	disabled := suite.newRack("A", 3, 1)
	for _, r := range []*rack.Rack{free, full, disabled} {
		suite.add(r)
	}

	suite.Require().NoError(full.Allocate(testNow))
	disabled.Disable(testNow)
	for _, r := range []*rack.Rack{full, disabled} {
		suite.tracker.On("TrackAggregate", r.ID().String(), r).Once()
		suite.Require().NoError(suite.repository.Update(ctx, r))
	}

	racks, err := suite.repository.ListAllocatable(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(racks, 1)
	suite.Equal(free.ID(), racks[0].ID())

	bySection, err := suite.repository.ListBySection(ctx, "A")
	suite.Require().NoError(err)
	suite.Len(bySection, 3)
}

func (suite *RackRepositoryIntegrationTestSuite) TestDelete_RemovesEmptySection() {
	ctx := context.Background()
	r := suite.newRack("C", 1, 1)
	suite.add(r)

	suite.tracker.On("TrackAggregate", r.ID().String(), r).Once()
	suite.Require().NoError(suite.repository.Delete(ctx, r))

	deleted, err := suite.sections.DeleteIfEmpty(ctx, "C")
	suite.Require().NoError(err)
	suite.True(deleted)

	_, err = suite.repository.Get(ctx, r.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, r), errs.ErrObjectNotFound)
}

func TestRackRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RackRepositoryIntegrationTestSuite))
}
