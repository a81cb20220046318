package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
	emailsvc "github.com/trezcool/shule/services/email"
	dummydb "github.com/trezcool/shule/storage/database/dummy"
	testutil "github.com/trezcool/shule/tests"
)

func setup(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	repo := dummydb.NewUserRepository(db)
	return user.NewService(repo, emailsvc.NewConsoleServiceMock()), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	nu := user.NewUser{
		Name:     "Jane Awesome",
		Email:    "jane@test.cd",
		Password: "v3ryS3cret!",
		Role:     user.RoleTeacher,
	}
	if err := nu.Validate(ctx, svc); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	usr, err := svc.Create(ctx, nu)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if usr.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
	if !usr.IsActive {
		t.Error("Create() new accounts must start active")
	}
	if err = usr.CheckPassword("v3ryS3cret!"); err != nil {
		t.Error("Create() stored hash does not match the password")
	}

	// duplicate email is flagged on the email field
	dup := user.NewUser{
		Name:     "Jane Imposter",
		Email:    "jane@test.cd",
		Password: "0therS3cret!",
		Role:     user.RoleStudent,
	}
	err = dup.Validate(ctx, svc)
	if err == nil {
		t.Fatal("Validate() expected a duplicate email error")
	}
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Validate() error = %T, want *core.ValidationError", err)
	}
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func TestService_Authenticate(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateUser(t, repo, "Active Amy", "amy@test.cd", "s3cr3tWord", user.RoleTeacher, true)
	testutil.CreateUser(t, repo, "Dormant Dan", "dan@test.cd", "s3cr3tWord", user.RoleTeacher, false)

	tests := []struct {
		name    string
		email   string
		pwd     string
		wantErr error
	}{
		{name: "unknown email", email: "who@test.cd", pwd: "s3cr3tWord", wantErr: user.ErrInvalidCredentials},
		{name: "wrong password", email: "amy@test.cd", pwd: "nope", wantErr: user.ErrInvalidCredentials},
		{name: "deactivated with correct password", email: "dan@test.cd", pwd: "s3cr3tWord", wantErr: user.ErrAccountDeactivated},
		{name: "deactivated with wrong password", email: "dan@test.cd", pwd: "nope", wantErr: user.ErrAccountDeactivated},
		{name: "ok", email: "amy@test.cd", pwd: "s3cr3tWord"},
		{name: "ok email case-insensitive", email: "AMY@Test.CD", pwd: "s3cr3tWord"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Authenticate(ctx, tt.email, tt.pwd)
			if err != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && usr.LastLogin.IsZero() {
				t.Error("Authenticate() did not set LastLogin")
			}
		})
	}
}

func TestService_ToggleActive(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, repo, "Admin", "admin@test.cd", "s3cr3tWord", user.RoleAdmin, true)
	target := testutil.CreateUser(t, repo, "Target", "target@test.cd", "s3cr3tWord", user.RoleTeacher, true)

	// an admin cannot deactivate their own account
	if _, err := svc.ToggleActive(ctx, admin.ID, admin.Principal()); err != user.ErrSelfDeactivation {
		t.Errorf("ToggleActive() error = %v, want %v", err, user.ErrSelfDeactivation)
	}

	// unknown target
	if _, err := svc.ToggleActive(ctx, 999, admin.Principal()); err != user.ErrNotFound {
		t.Errorf("ToggleActive() error = %v, want %v", err, user.ErrNotFound)
	}

	// a toggle flips the flag, a second toggle restores it
	usr, err := svc.ToggleActive(ctx, target.ID, admin.Principal())
	if err != nil {
		t.Fatalf("ToggleActive() failed: %v", err)
	}
	if usr.IsActive {
		t.Error("ToggleActive() expected a deactivated account")
	}
	usr, err = svc.ToggleActive(ctx, target.ID, admin.Principal())
	if err != nil {
		t.Fatalf("ToggleActive() failed: %v", err)
	}
	if !usr.IsActive {
		t.Error("ToggleActive() expected a reactivated account")
	}
}

func TestService_Filter(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	amy := testutil.CreateUser(t, repo, "Amy", "amy@test.cd", "s3cr3tWord", user.RoleTeacher, true)
	bob := testutil.CreateUser(t, repo, "Bob", "bob@test.cd", "s3cr3tWord", user.RoleStudent, true)
	dan := testutil.CreateUser(t, repo, "Dan", "dan@test.cd", "s3cr3tWord", user.RoleStudent, false)

	active := true
	inactive := false
	tests := []struct {
		name   string
		filter user.QueryFilter
		want   []user.User
	}{
		{name: "empty filter returns all", filter: user.QueryFilter{}, want: []user.User{amy, bob, dan}},
		{name: "search on name", filter: user.QueryFilter{Search: "am"}, want: []user.User{amy}},
		{name: "search on email", filter: user.QueryFilter{Search: "bob@"}, want: []user.User{bob}},
		{name: "role", filter: user.QueryFilter{Role: user.RoleStudent}, want: []user.User{bob, dan}},
		{name: "active", filter: user.QueryFilter{IsActive: &active}, want: []user.User{amy, bob}},
		{name: "role and inactive", filter: user.QueryFilter{Role: user.RoleStudent, IsActive: &inactive}, want: []user.User{dan}},
		{name: "no match", filter: user.QueryFilter{Search: "zzz"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Filter(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Filter() failed: %v", err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ResetPassword(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "Amy", "amy@test.cd", "s3cr3tWord", user.RoleTeacher, true)

	if err := svc.RequestPasswordReset(ctx, usr.Email); err != nil {
		t.Fatalf("RequestPasswordReset() failed: %v", err)
	}

	// deactivated accounts are not told apart from unknown ones
	dormant := testutil.CreateUser(t, repo, "Dan", "dan@test.cd", "s3cr3tWord", user.RoleTeacher, false)
	if err := svc.RequestPasswordReset(ctx, dormant.Email); err != user.ErrNotFound {
		t.Errorf("RequestPasswordReset() error = %v, want %v", err, user.ErrNotFound)
	}

	token, err := user.MakeToken(usr)
	if err != nil {
		t.Fatalf("MakeToken() failed: %v", err)
	}
	rp := user.ResetUserPassword{
		Token:           token,
		UID:             user.EncodeUID(usr),
		Password:        "aN3wWord!",
		PasswordConfirm: "aN3wWord!",
	}
	if err = rp.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if err = svc.ResetPassword(ctx, rp); err != nil {
		t.Fatalf("ResetPassword() failed: %v", err)
	}

	refreshed, err := svc.GetByID(ctx, usr.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if err = refreshed.CheckPassword("aN3wWord!"); err != nil {
		t.Error("ResetPassword() did not store the new password")
	}

	// a used password invalidates the old token
	if err = svc.ResetPassword(ctx, rp); err == nil {
		t.Error("ResetPassword() expected an invalid token error after a password change")
	}
}
