package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

func TestStudentStore_CRUDAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStudentStore()

	changes := 0
	store.SetChangeHook(func() { changes++ })

	a := &student.Student{ID: 1, Name: "Alice Johnson", Performance: student.PerformanceExcellent}
	b := &student.Student{ID: 2, Name: "Bob Williams", Performance: student.PerformanceGood}

	require.NoError(t, store.Create(ctx, a))
	require.NoError(t, store.Create(ctx, b))
	assert.ErrorIs(t, store.Create(ctx, a), student.ErrStudentAlreadyExists)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice Johnson", all[0].Name)
	assert.Equal(t, "Bob Williams", all[1].Name)

	a.Name = "Alice J."
	require.NoError(t, store.Update(ctx, a))
	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice J.", got.Name)

	require.NoError(t, store.Delete(ctx, 1))
	_, err = store.GetByID(ctx, 1)
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
	assert.ErrorIs(t, store.Delete(ctx, 1), student.ErrStudentNotFound)

	// create+create+update+delete fired the hook; failed calls did not
	assert.Equal(t, 4, changes)
}

func TestStudentStore_GetAllReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStudentStore()
	require.NoError(t, store.Create(ctx, &student.Student{ID: 1, Name: "Alice Johnson"}))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	all[0].Name = "Mallory"

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", got.Name)
}

func TestEnrollmentStore_SetSemantics(t *testing.T) {
	ctx := context.Background()
	store := NewEnrollmentStore()

	changes := 0
	store.SetChangeHook(func() { changes++ })

	e := enrollment.Enrollment{StudentID: 1, CourseID: 10}
	require.NoError(t, store.Add(ctx, e))
	require.NoError(t, store.Add(ctx, e)) // idempotent no-op

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, changes, "duplicate add must not fire the hook")

	require.NoError(t, store.Remove(ctx, e.Key()))
	require.NoError(t, store.Remove(ctx, e.Key())) // missing pair is a no-op

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 2, changes)
}

func TestEnrollmentStore_RemoveByCourse(t *testing.T) {
	ctx := context.Background()
	store := NewEnrollmentStore()

	require.NoError(t, store.Add(ctx, enrollment.Enrollment{StudentID: 1, CourseID: 10}))
	require.NoError(t, store.Add(ctx, enrollment.Enrollment{StudentID: 2, CourseID: 10}))
	require.NoError(t, store.Add(ctx, enrollment.Enrollment{StudentID: 1, CourseID: 20}))

	removed, err := store.RemoveByCourse(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	rest, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, enrollment.Enrollment{StudentID: 1, CourseID: 20}, rest[0])
}

func TestAttendanceStore_UpsertOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	store := NewAttendanceStore()

	r := attendance.Record{StudentID: 1, CourseID: 10, Date: "2024-01-01", Status: attendance.StatusPresent}
	require.NoError(t, store.Upsert(ctx, r))
	require.NoError(t, store.Upsert(ctx, r)) // identical repeat

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "idempotent repeat keeps exactly one record")

	r.Status = attendance.StatusAbsent
	require.NoError(t, store.Upsert(ctx, r)) // same key, new status

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "overwrite must not duplicate")

	got, ok, err := store.Get(ctx, r.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusAbsent, got.Status, "latest status wins")
}

func TestAttendanceStore_NoRecordIsNotAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewAttendanceStore()

	_, ok, err := store.Get(ctx, attendance.Key{StudentID: 1, CourseID: 10, Date: "2024-01-01"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttendanceStore_ReplaceAllCollapsesDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewAttendanceStore()

	require.NoError(t, store.ReplaceAll(ctx, []attendance.Record{
		{StudentID: 1, CourseID: 10, Date: "2024-01-01", Status: attendance.StatusPresent},
		{StudentID: 1, CourseID: 10, Date: "2024-01-01", Status: attendance.StatusLate},
	}))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, ok, err := store.Get(ctx, attendance.Key{StudentID: 1, CourseID: 10, Date: "2024-01-01"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusLate, got.Status)
}
