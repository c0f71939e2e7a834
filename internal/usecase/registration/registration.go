// Package registration stages new accounts as pending users and
// promotes them to confirmed users once the e-mailed confirmation
// code comes back.
package registration

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mathdefenders/internal/confirmation"
	"mathdefenders/internal/domain/pending"
	errs "mathdefenders/internal/errors"
	"mathdefenders/internal/validation"
)

// DefaultBcryptCost is the work factor for password hashing. Tests
// inject a lower cost through NewUsecaseWithCost.
const DefaultBcryptCost = 13

type UserStorage interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, usernameLower string) (bool, error)
}

type PendingUserStorage interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, usernameLower string) (bool, error)
	Create(ctx context.Context, p pending.PendingUser) error
	FindByEmailAndCodeHash(ctx context.Context, email, codeHash string) (pending.PendingUser, error)
	Promote(ctx context.Context, p pending.PendingUser) error
}

type Mailer interface {
	SendConfirmationMail(ctx context.Context, toEmail, username, confirmationLink string) error
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, responseToken string) (bool, error)
}

type Usecase struct {
	users        UserStorage
	pendingUsers PendingUserStorage
	mailer       Mailer
	captcha      CaptchaVerifier
	siteURL      string
	bcryptCost   int
	log          *zap.SugaredLogger
}

func NewUsecase(users UserStorage, pendingUsers PendingUserStorage, mailer Mailer, captcha CaptchaVerifier, siteURL string, log *zap.SugaredLogger) *Usecase {
	return NewUsecaseWithCost(users, pendingUsers, mailer, captcha, siteURL, DefaultBcryptCost, log)
}

func NewUsecaseWithCost(users UserStorage, pendingUsers PendingUserStorage, mailer Mailer, captcha CaptchaVerifier, siteURL string, bcryptCost int, log *zap.SugaredLogger) *Usecase {
	return &Usecase{
		users:        users,
		pendingUsers: pendingUsers,
		mailer:       mailer,
		captcha:      captcha,
		siteURL:      strings.TrimRight(siteURL, "/"),
		bcryptCost:   bcryptCost,
		log:          log,
	}
}

// CreatePendingUser validates a registration submission and stages it
// as a pending user. The record is only written after the confirmation
// mail went out, so a failed dispatch leaves nothing behind.
func (u *Usecase) CreatePendingUser(ctx context.Context, email, username, password, captchaToken string) error {
	ok, err := u.captcha.Verify(ctx, captchaToken)
	if err != nil {
		u.log.Errorw("captcha verification failed", "error", err)
		return errs.ErrInternal
	}
	if !ok {
		return errs.ErrCaptchaIncomplete
	}

	email = strings.ToLower(email)
	usernameLower := strings.ToLower(username)

	// first failing rule wins; the order is part of the contract
	switch {
	case email == "":
		return errs.ErrEmailInvalid
	case username == "":
		return errs.ErrUsernameInvalid
	case !validation.IsEmailSafe(email):
		return errs.ErrEmailInvalid
	case !validation.IsEmailValid(email):
		return errs.ErrEmailInvalid
	case !validation.IsUsernameValid(username):
		return errs.ErrUsernameInvalid
	case !validation.IsPasswordValid(password):
		return errs.ErrPasswordInvalid
	}

	taken, err := u.emailTaken(ctx, email)
	if err != nil {
		u.log.Errorw("e-mail uniqueness check failed", "error", err)
		return errs.ErrInternal
	}
	if taken {
		return errs.ErrEmailTaken
	}

	taken, err = u.usernameTaken(ctx, usernameLower)
	if err != nil {
		u.log.Errorw("username uniqueness check failed", "error", err)
		return errs.ErrInternal
	}
	if taken {
		return errs.ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		u.log.Errorw("password hashing failed", "error", err)
		return errs.ErrInternal
	}

	code := confirmation.GenerateCode()
	link := u.siteURL + "/confirm-email-address?email=" + confirmation.EncodeEmailForLink(email) + "&code=" + code

	if err := u.mailer.SendConfirmationMail(ctx, email, username, link); err != nil {
		u.log.Errorw("confirmation mail dispatch failed", "email", email, "error", err)
		return errs.ErrMailDispatch
	}

	record := pending.PendingUser{
		DesiredUsername:               username,
		DesiredUsernameInAllLowercase: usernameLower,
		DesiredEmail:                  email,
		HashedPassword:                string(hashed),
		EmailConfirmationCodeHash:     confirmation.HashCode(code),
		ExpiresAt:                     time.Now().Add(pending.TTL),
	}
	if err := u.pendingUsers.Create(ctx, record); err != nil {
		u.log.Errorw("failed to store pending user", "email", email, "error", err)
		return errs.ErrInternal
	}

	u.log.Infow("pending user created", "username", username)
	return nil
}

// VerifyPendingUser promotes a pending registration whose e-mail and
// confirmation code match. Promotion is atomic in the storage layer.
func (u *Usecase) VerifyPendingUser(ctx context.Context, email, code string) error {
	email = strings.ToLower(email)

	record, err := u.pendingUsers.FindByEmailAndCodeHash(ctx, email, confirmation.HashCode(code))
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errs.ErrRecordNotFound
		}
		u.log.Errorw("pending user lookup failed", "error", err)
		return errs.ErrInternal
	}

	if err := u.pendingUsers.Promote(ctx, record); err != nil {
		u.log.Errorw("pending user promotion failed", "username", record.DesiredUsername, "error", err)
		return errs.ErrInternal
	}

	u.log.Infow("user registered", "username", record.DesiredUsername)
	return nil
}

func (u *Usecase) emailTaken(ctx context.Context, email string) (bool, error) {
	taken, err := u.users.EmailExists(ctx, email)
	if err != nil || taken {
		return taken, err
	}
	return u.pendingUsers.EmailExists(ctx, email)
}

func (u *Usecase) usernameTaken(ctx context.Context, usernameLower string) (bool, error) {
	taken, err := u.users.UsernameExists(ctx, usernameLower)
	if err != nil || taken {
		return taken, err
	}
	return u.pendingUsers.UsernameExists(ctx, usernameLower)
}
