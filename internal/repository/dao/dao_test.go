package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_USER=test",
			"POSTGRES_DB=sportconnect_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=secret dbname=sportconnect_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		testDB = db
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not create tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge container: %v", err)
	}

	os.Exit(code)
}

// each test works with its own rows; the database is shared.
func requireDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	return testDB
}

func insertTestUser(t *testing.T, db *gorm.DB, username string, points int) User {
	t.Helper()

	user, err := NewUserDAO(db).Insert(context.Background(), User{
		Username:     username,
		PasswordHash: "irrelevant",
		Points:       points,
	})
	require.NoError(t, err)

	return user
}

func insertTestEvent(t *testing.T, db *gorm.DB, organizerID uint) Event {
	t.Helper()

	event, _, err := NewEventDAO(db).Insert(context.Background(), Event{
		Sport:       "football",
		Level:       "all",
		Gender:      "mixed",
		Location:    "Paris",
		StartsAt:    time.Now().Add(24 * time.Hour),
		OrganizerID: organizerID,
	}, 0)
	require.NoError(t, err)

	return event
}

func TestUserDAO_Insert_DuplicateUsername(t *testing.T) {
	db := requireDB(t)

	insertTestUser(t, db, "dup_user", 0)

	_, err := NewUserDAO(db).Insert(context.Background(), User{
		Username:     "dup_user",
		PasswordHash: "irrelevant",
	})

	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserDAO_UpdatePoints_Clamps(t *testing.T) {
	db := requireDB(t)
	d := NewUserDAO(db)

	user := insertTestUser(t, db, "clamp_user", 5)

	balance, err := d.UpdatePoints(context.Background(), user.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	balance, err = d.UpdatePoints(context.Background(), user.ID, 70)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)
}

func TestUserDAO_UpdatePoints_UnknownUser(t *testing.T) {
	db := requireDB(t)

	_, err := NewUserDAO(db).UpdatePoints(context.Background(), 999999, 10)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDAO_ResetPoints(t *testing.T) {
	db := requireDB(t)
	d := NewUserDAO(db)

	user := insertTestUser(t, db, "reset_user", 450)

	require.NoError(t, d.ResetPoints(context.Background(), user.ID))

	found, err := d.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.Points)
}

func TestEventDAO_Insert_CreditsOrganizer(t *testing.T) {
	db := requireDB(t)

	user := insertTestUser(t, db, "organizer_credit", 0)

	_, balance, err := NewEventDAO(db).Insert(context.Background(), Event{
		Sport:       "tennis",
		Level:       "all",
		Gender:      "mixed",
		Location:    "Lyon",
		StartsAt:    time.Now().Add(time.Hour),
		OrganizerID: user.ID,
	}, 20)

	require.NoError(t, err)
	assert.Equal(t, 20, balance)
}

func TestEventDAO_JoinLeaveRoundTrip(t *testing.T) {
	db := requireDB(t)
	d := NewEventDAO(db)

	organizer := insertTestUser(t, db, "rt_organizer", 0)
	joiner := insertTestUser(t, db, "rt_joiner", 0)
	event := insertTestEvent(t, db, organizer.ID)

	balance, err := d.Join(context.Background(), joiner.ID, event.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)

	reversed, balance, err := d.Leave(context.Background(), joiner.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, reversed)
	assert.Equal(t, 0, balance)
}

func TestEventDAO_Join_Twice(t *testing.T) {
	db := requireDB(t)
	d := NewEventDAO(db)

	organizer := insertTestUser(t, db, "twice_organizer", 0)
	joiner := insertTestUser(t, db, "twice_joiner", 0)
	event := insertTestEvent(t, db, organizer.ID)

	_, err := d.Join(context.Background(), joiner.ID, event.ID, 50)
	require.NoError(t, err)

	_, err = d.Join(context.Background(), joiner.ID, event.ID, 50)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	found, err := NewUserDAO(db).FindByID(context.Background(), joiner.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, found.Points, "a rejected join must not change the balance")
}

func TestEventDAO_Leave_NotJoined(t *testing.T) {
	db := requireDB(t)
	d := NewEventDAO(db)

	organizer := insertTestUser(t, db, "nj_organizer", 0)
	outsider := insertTestUser(t, db, "nj_outsider", 0)
	event := insertTestEvent(t, db, organizer.ID)

	_, _, err := d.Leave(context.Background(), outsider.ID, event.ID)

	assert.ErrorIs(t, err, ErrNotJoined)
}

func TestEventDAO_Cancel(t *testing.T) {
	db := requireDB(t)
	d := NewEventDAO(db)

	organizer := insertTestUser(t, db, "cancel_organizer", 30)
	event := insertTestEvent(t, db, organizer.ID)

	require.NoError(t, d.Cancel(context.Background(), event.ID, organizer.ID, -10))

	found, err := d.FindByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.True(t, found.IsCancelled)

	user, err := NewUserDAO(db).FindByID(context.Background(), organizer.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, user.Points)
}

func TestEventDAO_ToggleCancelled(t *testing.T) {
	db := requireDB(t)
	d := NewEventDAO(db)

	organizer := insertTestUser(t, db, "toggle_organizer", 0)
	event := insertTestEvent(t, db, organizer.ID)

	cancelled, err := d.ToggleCancelled(context.Background(), event.ID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	cancelled, err = d.ToggleCancelled(context.Background(), event.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestEventDAO_Delete_Cascades(t *testing.T) {
	db := requireDB(t)
	d := NewEventDAO(db)

	organizer := insertTestUser(t, db, "del_organizer", 0)
	joiner := insertTestUser(t, db, "del_joiner", 0)
	event := insertTestEvent(t, db, organizer.ID)

	_, err := d.Join(context.Background(), joiner.ID, event.ID, 50)
	require.NoError(t, err)

	_, err = NewMessageDAO(db).Insert(context.Background(), Message{
		EventID: event.ID,
		UserID:  joiner.ID,
		Content: "anyone bringing a ball?",
	})
	require.NoError(t, err)

	require.NoError(t, d.Delete(context.Background(), event.ID))

	_, err = d.FindByID(context.Background(), event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = d.FindParticipation(context.Background(), joiner.ID, event.ID)
	assert.ErrorIs(t, err, ErrNotJoined)

	user, err := NewUserDAO(db).FindByID(context.Background(), joiner.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, user.Points, "deleting an event keeps earned points")
}

func TestMessageDAO_FindByEventID_Pagination(t *testing.T) {
	db := requireDB(t)
	d := NewMessageDAO(db)

	organizer := insertTestUser(t, db, "msg_organizer", 0)
	event := insertTestEvent(t, db, organizer.ID)

	for _, content := range []string{"first", "second", "third"} {
		_, err := d.Insert(context.Background(), Message{
			EventID: event.ID,
			UserID:  organizer.ID,
			Content: content,
		})
		require.NoError(t, err)
	}

	messages, err := d.FindByEventID(context.Background(), event.ID, 2, 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "second", messages[0].Content)
	assert.Equal(t, "third", messages[1].Content)
}

func TestPlaceDAO_SetActive(t *testing.T) {
	db := requireDB(t)
	d := NewPlaceDAO(db)

	place, err := d.Insert(context.Background(), Place{
		Name:     "Gymnase Jean Moulin",
		City:     "Paris",
		IsActive: true,
	})
	require.NoError(t, err)

	require.NoError(t, d.SetActive(context.Background(), place.ID, false))

	active, err := d.FindAll(context.Background(), true)
	require.NoError(t, err)
	for _, p := range active {
		assert.NotEqual(t, place.ID, p.ID)
	}

	all, err := d.FindAll(context.Background(), false)
	require.NoError(t, err)

	var found bool
	for _, p := range all {
		if p.ID == place.ID {
			found = true
		}
	}
	assert.True(t, found)
}
