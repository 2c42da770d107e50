package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/nac-jewellers-backup/vendorAPI/internal/auth"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/nac-jewellers-backup/vendorAPI/internal/otp"
	"github.com/nac-jewellers-backup/vendorAPI/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeNotifier struct {
	mobile  string
	message string
	err     error
}

func (f *fakeNotifier) Send(ctx context.Context, mobile, message string) error {
	f.mobile = mobile
	f.message = message
	return f.err
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newAccountService(t *testing.T) (*AccountService, *storage.InMemoryStorage, *fakeNotifier, *auth.Authenticator) {
	t.Helper()
	store := storage.NewInMemoryStorage()
	a, err := auth.NewAuthenticator("test-secret", auth.DefaultTTL)
	require.NoError(t, err)
	n := &fakeNotifier{}

	require.NoError(t, store.Put(context.Background(), models.AdminTable, storage.Record{
		"id": "a1", "name": "Ravi", "mobile_number": "111", "password": hashed(t, "pw"),
	}))
	require.NoError(t, store.Put(context.Background(), models.VendorTable, storage.Record{
		"id": "v1", "vendor_name": "Gold Works", "mobile_number": "222", "password": hashed(t, "vpw"),
	}))

	return NewAccountService(store, a, n, otp.NewMemoryStore(), time.Minute), store, n, a
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _, a := newAccountService(t)

	res, err := svc.Login(ctx, models.AdminTable, "111", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", res.Name)
	assert.Equal(t, "111", res.Session.User.MobileNumber)
	assert.NoError(t, a.ValidateSession(&res.Session))

	res, err = svc.Login(ctx, models.VendorTable, "222", "vpw")
	require.NoError(t, err)
	assert.Equal(t, "Gold Works", res.Name)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAccountService(t)

	_, err := svc.Login(ctx, models.AdminTable, "111", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.AdminTable, "999", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.EnquiryTable, "111", "pw")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

var otpPattern = regexp.MustCompile(`OTP (\d{4}) `)

func sentOTP(t *testing.T, message string) string {
	t.Helper()
	m := otpPattern.FindStringSubmatch(message)
	require.Len(t, m, 2, message)
	return m[1]
}

func TestRequestOTPAndReset(t *testing.T) {
	ctx := context.Background()
	svc, store, n, _ := newAccountService(t)

	res, err := svc.RequestOTP(ctx, models.AdminTable, "111")
	require.NoError(t, err)
	assert.Equal(t, "a1", res.ID)
	assert.Equal(t, "111", n.mobile)
	code := sentOTP(t, n.message)
	assert.Equal(t, "Dear Ravi, Please use this OTP "+code+" to reset the password.", n.message)

	assert.ErrorIs(t, svc.ResetPassword(ctx, models.AdminTable, "a1", "0000", "new"), ErrInvalidOTP)
	require.NoError(t, svc.ResetPassword(ctx, models.AdminTable, "a1", code, " new "))
	assert.ErrorIs(t, svc.ResetPassword(ctx, models.AdminTable, "a1", code, "again"), ErrInvalidOTP)

	got, err := store.Get(ctx, models.AdminTable, "a1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got["password"].(string)), []byte("new")))
	assert.Equal(t, "Ravi", got["name"])
}

func TestRequestOTP_Failures(t *testing.T) {
	ctx := context.Background()
	svc, _, n, _ := newAccountService(t)

	_, err := svc.RequestOTP(ctx, models.VendorTable, "999")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	n.err = errors.New("gateway down")
	_, err = svc.RequestOTP(ctx, models.VendorTable, "222")
	assert.ErrorIs(t, err, ErrOTPDelivery)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := newAccountService(t)
	vendor := auth.Identity{MobileNumber: "222"}

	assert.ErrorIs(t, svc.ChangePassword(ctx, vendor, models.VendorTable, "v1", "bad", "x"), ErrIncorrectPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, vendor, models.VendorTable, "v9", "vpw", "x"), storage.ErrNotFound)

	require.NoError(t, svc.ChangePassword(ctx, vendor, models.VendorTable, "v1", "vpw", "fresh"))

	_, err := svc.Login(ctx, models.VendorTable, "222", "fresh")
	assert.NoError(t, err)

	got, err := store.Get(ctx, models.VendorTable, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Gold Works", got["vendor_name"])
}

func TestChangePassword_OnlyOwnAccount(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := newAccountService(t)
	admin := auth.Identity{MobileNumber: "111"}

	// Right old password, wrong session.
	assert.ErrorIs(t, svc.ChangePassword(ctx, admin, models.VendorTable, "v1", "vpw", "stolen"), ErrNotAccountOwner)
	assert.ErrorIs(t, svc.ChangePassword(ctx, auth.Identity{}, models.VendorTable, "v1", "vpw", "stolen"), ErrNotAccountOwner)

	got, err := store.Get(ctx, models.VendorTable, "v1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got["password"].(string)), []byte("vpw")))
}
