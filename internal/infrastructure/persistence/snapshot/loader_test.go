package snapshot_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/memory"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/snapshot"
)

// fakeBlobStore держит блобы в памяти; реализует snapshot.Store.
type fakeBlobStore struct {
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Save(_ context.Context, key string, blob []byte) error {
	s.blobs[key] = blob
	return nil
}

func (s *fakeBlobStore) Load(_ context.Context, key string) ([]byte, error) {
	blob, ok := s.blobs[key]
	if !ok {
		return nil, snapshot.ErrNotFound
	}
	return blob, nil
}

func (s *fakeBlobStore) Ping(context.Context) error { return nil }
func (s *fakeBlobStore) Close() error               { return nil }

func testStores() snapshot.Stores {
	return snapshot.Stores{
		Students:    memory.NewStudentStore(),
		Teachers:    memory.NewTeacherStore(),
		Courses:     memory.NewCourseStore(),
		Events:      memory.NewEventStore(),
		Enrollments: memory.NewEnrollmentStore(),
		Attendance:  memory.NewAttendanceStore(),
	}
}

func testSeed() snapshot.SeedData {
	return snapshot.SeedData{
		Students: []*student.Student{
			{ID: 1, Name: "Alice", Age: 16, Grade: 10, Class: "A", Performance: student.PerformanceGood},
			{ID: 2, Name: "Bob", Age: 17, Grade: 11, Class: "B", Performance: student.PerformanceAverage},
		},
	}
}

func TestLoader_MissingBlobsFallBackToSeedAndEmpty(t *testing.T) {
	ctx := context.Background()
	stores := testStores()

	// Пустое хранилище: первый запуск без единого снапшота.
	loader := snapshot.NewLoader(newFakeBlobStore(), testSeed(), nil)
	require.NoError(t, loader.LoadAll(ctx, stores))

	students, err := stores.Students.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alice", students[0].Name)

	enrollments, err := stores.Enrollments.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, enrollments)

	records, err := stores.Attendance.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoader_CorruptStudentsBlobFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	stores := testStores()

	blobs := newFakeBlobStore()
	blobs.blobs[snapshot.KeyStudents] = []byte("{definitely not json")

	loader := snapshot.NewLoader(blobs, testSeed(), nil)
	require.NoError(t, loader.LoadAll(ctx, stores))

	students, err := stores.Students.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alice", students[0].Name)
	assert.Equal(t, "Bob", students[1].Name)
}

func TestLoader_CorruptEnrollmentsBlobFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	stores := testStores()

	blobs := newFakeBlobStore()
	blobs.blobs[snapshot.KeyEnrollments] = []byte(`[{"studentId": "broken"`)

	loader := snapshot.NewLoader(blobs, testSeed(), nil)
	require.NoError(t, loader.LoadAll(ctx, stores))

	enrollments, err := stores.Enrollments.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestLoader_ValidBlobWinsOverSeed(t *testing.T) {
	ctx := context.Background()
	stores := testStores()

	saved := []*student.Student{
		{ID: 42, Name: "Carol", Age: 15, Grade: 9, Class: "C", Performance: student.PerformanceExcellent},
	}
	studentsBlob, err := json.Marshal(saved)
	require.NoError(t, err)

	enrollmentsBlob, err := json.Marshal([]enrollment.Enrollment{
		{StudentID: 42, CourseID: 7},
	})
	require.NoError(t, err)

	blobs := newFakeBlobStore()
	blobs.blobs[snapshot.KeyStudents] = studentsBlob
	blobs.blobs[snapshot.KeyEnrollments] = enrollmentsBlob

	loader := snapshot.NewLoader(blobs, testSeed(), nil)
	require.NoError(t, loader.LoadAll(ctx, stores))

	// Снапшот вытесняет встроенный набор данных.
	students, err := stores.Students.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Carol", students[0].Name)

	enrollments, err := stores.Enrollments.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, enrollment.Enrollment{StudentID: 42, CourseID: 7}, enrollments[0])
}

func TestLoader_RoundTripThroughSerialize(t *testing.T) {
	ctx := context.Background()

	first := testStores()
	loader := snapshot.NewLoader(newFakeBlobStore(), testSeed(), nil)
	require.NoError(t, loader.LoadAll(ctx, first))

	// Сериализуем состояние первого процесса и поднимаем из него второй.
	blobs := newFakeBlobStore()
	for _, key := range snapshot.AllKeys {
		blob, err := first.Serialize(ctx, key)
		require.NoError(t, err)
		require.NoError(t, blobs.Save(ctx, key, blob))
	}

	second := testStores()
	reloader := snapshot.NewLoader(blobs, snapshot.SeedData{}, nil)
	require.NoError(t, reloader.LoadAll(ctx, second))

	students, err := second.Students.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alice", students[0].Name)
}
