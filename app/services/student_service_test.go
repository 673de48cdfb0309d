package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/pkg/auth"
)

func validStudentInput() StudentInput {
	return StudentInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "secret123",
		RollNo:   "STU010",
		Hostel:   "A Block",
		Room:     "101",
		Phone:    "9876543210",
	}
}

func TestCreateStudent(t *testing.T) {
	db := testDB(t)
	svc := NewStudentService(db)

	student, err := svc.Create(validStudentInput())
	require.NoError(t, err)
	assert.NotZero(t, student.ID)
	assert.Equal(t, "STU010", student.RollNo)
	assert.Equal(t, models.RoleStudent, student.User.Role)

	// Password is stored hashed.
	assert.NotEqual(t, "secret123", student.User.Password)
	assert.True(t, auth.CheckPassword(student.User.Password, "secret123"))
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	db := testDB(t)
	svc := NewStudentService(db)

	_, err := svc.Create(validStudentInput())
	require.NoError(t, err)

	in := validStudentInput()
	in.RollNo = "STU011"
	_, err = svc.Create(in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateStudentDuplicateRollNo(t *testing.T) {
	db := testDB(t)
	svc := NewStudentService(db)

	_, err := svc.Create(validStudentInput())
	require.NoError(t, err)

	in := validStudentInput()
	in.Email = "other@example.com"
	_, err = svc.Create(in)
	assert.ErrorIs(t, err, ErrRollNoTaken)
}

func TestDeleteStudentRemovesHistory(t *testing.T) {
	db := testDB(t)
	svc := NewStudentService(db)

	student, err := svc.Create(validStudentInput())
	require.NoError(t, err)

	_, err = NewMealPlanService(db).Mark(student.ID, models.MealLunch, true)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(student.ID))

	var users, students, records int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Student{}).Count(&students)
	db.Model(&models.MealRecord{}).Count(&records)
	assert.Zero(t, users)
	assert.Zero(t, students)
	assert.Zero(t, records)
}

func TestDeleteUnknownStudent(t *testing.T) {
	db := testDB(t)
	assert.ErrorIs(t, NewStudentService(db).Delete(99), ErrNotFound)
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	_, err := NewStudentService(db).Create(validStudentInput())
	require.NoError(t, err)

	svc := NewAuthService(db)

	token, user, err := svc.Login("john@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "john@example.com", user.Email)

	_, _, err = svc.Login("john@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("ghost@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteFreesEmailAndRollNo(t *testing.T) {
	db := testDB(t)
	svc := NewStudentService(db)

	student, err := svc.Create(validStudentInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(student.ID))

	// The unique email and roll number are usable again, so the delete
	// must have been physical rather than a soft delete.
	replacement, err := svc.Create(validStudentInput())
	require.NoError(t, err)
	assert.NotEqual(t, student.ID, replacement.ID)

	var users, students int64
	db.Unscoped().Model(&models.User{}).Count(&users)
	db.Unscoped().Model(&models.Student{}).Count(&students)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, students)
}
