package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aslanbek/shanyrak/internal/common"
)

func validRegistration() RegisterParams {
	return RegisterParams{
		Username: "alice@example.com",
		Phone:    "+77071234567",
		Password: "abcd1234",
		Name:     "Alice",
		City:     "Almaty",
	}
}

func TestRegisterLoginAuthenticate_Roundtrip(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewIdentityService(db, newFakeRepoManager(), testConfig())
	ctx := context.Background()

	id, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotZero(t, id)

	token, err := svc.Login(ctx, "alice@example.com", "abcd1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewIdentityService(db, newFakeRepoManager(), testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	p := validRegistration()
	p.Phone = "+77070000001" // different phone, same username
	_, err = svc.Register(ctx, p)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestRegister_ValidationFailsFast(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	svc := NewIdentityService(db, rm, testConfig())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"bad username", func(p *RegisterParams) { p.Username = "not-an-email" }},
		{"bad phone", func(p *RegisterParams) { p.Phone = "87071234567" }},
		{"bad password", func(p *RegisterParams) { p.Password = "short1" }},
		{"bad name", func(p *RegisterParams) { p.Name = "x3!" }},
		{"bad city", func(p *RegisterParams) { p.City = "Nur Sultan 1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validRegistration()
			tt.mutate(&p)
			_, err := svc.Register(ctx, p)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	// no user was ever written
	assert.Empty(t, rm.u.users)
}

func TestLogin_UnknownUserAndWrongPassword(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewIdentityService(db, newFakeRepoManager(), testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ghost@example.com", "abcd1234")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.Login(ctx, "alice@example.com", "wrongpass1")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAuthenticate_BadToken(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewIdentityService(db, newFakeRepoManager(), testConfig())

	_, err := svc.Authenticate(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestGetProfile(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewIdentityService(db, newFakeRepoManager(), testConfig())
	ctx := context.Background()

	id, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	p, err := svc.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", p.Username)
	assert.Equal(t, "Almaty", p.City)

	_, err = svc.GetProfile(ctx, 9999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateProfile_PartialAndValidated(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	svc := NewIdentityService(db, rm, testConfig())
	ctx := context.Background()

	id, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	city := "Astana"
	require.NoError(t, svc.UpdateProfile(ctx, id, ProfileUpdate{City: &city}))

	p, err := svc.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Astana", p.City)
	assert.Equal(t, "+77071234567", p.Phone, "untouched field must survive")

	badPhone := "123"
	err = svc.UpdateProfile(ctx, id, ProfileUpdate{Phone: &badPhone})
	assert.ErrorIs(t, err, common.ErrValidation)

	p, err = svc.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "+77071234567", p.Phone, "rejected update must not write")
}
