package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nac-jewellers-backup/vendorAPI/internal/auth"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/nac-jewellers-backup/vendorAPI/internal/notify"
	"github.com/nac-jewellers-backup/vendorAPI/internal/otp"
	"github.com/nac-jewellers-backup/vendorAPI/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnknownTable       = errors.New("unknown account table")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectPassword  = errors.New("password is incorrect")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrOTPDelivery        = errors.New("could not send otp")
	ErrNotAccountOwner    = errors.New("session does not own the account")
)

const mobileField = "mobile_number"

type LoginResult struct {
	Session auth.Session
	Name    any
}

// OTPResult describes the account a reset code was sent to. The code itself
// only travels by SMS.
type OTPResult struct {
	ID           string `json:"id"`
	Name         any    `json:"name"`
	MobileNumber string `json:"mobile_number"`
}

// AccountService covers login and the password flows for admins and vendors.
type AccountService struct {
	store    storage.DocumentStore
	auth     *auth.Authenticator
	notifier notify.Notifier
	otps     otp.Store
	otpTTL   time.Duration
}

func NewAccountService(store storage.DocumentStore, authenticator *auth.Authenticator, notifier notify.Notifier, otps otp.Store, otpTTL time.Duration) *AccountService {
	return &AccountService{
		store:    store,
		auth:     authenticator,
		notifier: notifier,
		otps:     otps,
		otpTTL:   otpTTL,
	}
}

func accountEntity(table string) (*models.Entity, error) {
	e, ok := models.AccountTables[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	return e, nil
}

// findByMobile scans table for the first record holding mobile.
func (s *AccountService) findByMobile(ctx context.Context, table, mobile string) (storage.Record, error) {
	records, err := s.store.Scan(ctx, table)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if m, _ := r[mobileField].(string); m != "" && m == mobile {
			return r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *AccountService) Login(ctx context.Context, table, mobile, password string) (*LoginResult, error) {
	e, err := accountEntity(table)
	if err != nil {
		return nil, err
	}

	user, err := s.findByMobile(ctx, table, mobile)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	hash, _ := user[models.PasswordField].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := auth.Identity{MobileNumber: user[mobileField].(string)}
	token, err := s.auth.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Session: auth.Session{User: identity, Token: token},
		Name:    user[e.DisplayName],
	}, nil
}

// RequestOTP sends a password reset code to the account holding mobile and
// remembers it until the reset or the TTL, whichever comes first.
func (s *AccountService) RequestOTP(ctx context.Context, table, mobile string) (*OTPResult, error) {
	e, err := accountEntity(table)
	if err != nil {
		return nil, err
	}

	user, err := s.findByMobile(ctx, table, mobile)
	if err != nil {
		return nil, err
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}
	if err := s.otps.Save(ctx, otpKey(table, user.ID()), code, s.otpTTL); err != nil {
		return nil, err
	}

	name := user[e.DisplayName]
	msg := fmt.Sprintf("Dear %v, Please use this OTP %s to reset the password.", name, code)
	if err := s.notifier.Send(ctx, mobile, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOTPDelivery, err)
	}

	return &OTPResult{
		ID:           user.ID(),
		Name:         name,
		MobileNumber: mobile,
	}, nil
}

// ResetPassword sets a new password once the code issued by RequestOTP is
// presented. The code is single use.
func (s *AccountService) ResetPassword(ctx context.Context, table, id, code, password string) error {
	if _, err := accountEntity(table); err != nil {
		return err
	}

	if err := s.otps.Consume(ctx, otpKey(table, id), code); err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	return s.setPassword(ctx, table, id, password)
}

// ChangePassword replaces the password of the caller's own account. The
// record must hold the caller's mobile number.
func (s *AccountService) ChangePassword(ctx context.Context, caller auth.Identity, table, id, oldPassword, newPassword string) error {
	if _, err := accountEntity(table); err != nil {
		return err
	}

	user, err := s.store.Get(ctx, table, id)
	if err != nil {
		return err
	}

	if owner, _ := user[mobileField].(string); owner == "" || owner != caller.MobileNumber {
		return ErrNotAccountOwner
	}

	hash, _ := user[models.PasswordField].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)); err != nil {
		return ErrIncorrectPassword
	}
	return s.setPassword(ctx, table, id, newPassword)
}

// setPassword is the only path that writes the password attribute of an
// existing record.
func (s *AccountService) setPassword(ctx context.Context, table, id, password string) error {
	hash, err := hashPassword(strings.TrimSpace(password))
	if err != nil {
		return err
	}
	return s.store.Update(ctx, table, storage.SetField(id, models.PasswordField, hash))
}

func otpKey(table, id string) string {
	return table + ":" + id
}
