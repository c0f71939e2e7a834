// Package passwordreset lets a user with a known e-mail request and
// complete a password change. Requests for unknown or already-pending
// addresses succeed from the caller's point of view but write nothing,
// so the endpoint cannot be used to probe which accounts exist.
package passwordreset

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mathdefenders/internal/confirmation"
	"mathdefenders/internal/domain/pending"
	"mathdefenders/internal/domain/user"
	errs "mathdefenders/internal/errors"
	"mathdefenders/internal/validation"
)

type UserStorage interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type ResetStorage interface {
	ExistsForEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, rec pending.PendingPasswordReset) error
	FindByEmailAndCodeHash(ctx context.Context, email, codeHash string) (pending.PendingPasswordReset, error)
	Complete(ctx context.Context, rec pending.PendingPasswordReset, newHashedPassword string) error
}

type Mailer interface {
	SendPasswordResetMail(ctx context.Context, toEmail, resetLink string) error
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, responseToken string) (bool, error)
}

type Usecase struct {
	users      UserStorage
	resets     ResetStorage
	mailer     Mailer
	captcha    CaptchaVerifier
	siteURL    string
	bcryptCost int
	log        *zap.SugaredLogger
}

func NewUsecase(users UserStorage, resets ResetStorage, mailer Mailer, captcha CaptchaVerifier, siteURL string, log *zap.SugaredLogger) *Usecase {
	return NewUsecaseWithCost(users, resets, mailer, captcha, siteURL, 13, log)
}

func NewUsecaseWithCost(users UserStorage, resets ResetStorage, mailer Mailer, captcha CaptchaVerifier, siteURL string, bcryptCost int, log *zap.SugaredLogger) *Usecase {
	return &Usecase{
		users:      users,
		resets:     resets,
		mailer:     mailer,
		captcha:    captcha,
		siteURL:    strings.TrimRight(siteURL, "/"),
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// CreatePendingPasswordReset stages a reset request. A nil return does
// NOT mean a record was written: unknown addresses and repeat requests
// report success while writing nothing.
func (u *Usecase) CreatePendingPasswordReset(ctx context.Context, email, captchaToken string) error {
	ok, err := u.captcha.Verify(ctx, captchaToken)
	if err != nil {
		u.log.Errorw("captcha verification failed", "error", err)
		return errs.ErrInternal
	}
	if !ok {
		return errs.ErrCaptchaIncomplete
	}

	email = strings.ToLower(email)
	if email == "" || !validation.IsEmailSafe(email) || !validation.IsEmailValid(email) {
		return errs.ErrEmailInvalid
	}

	target, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			// anti-enumeration: report success, write nothing
			return nil
		}
		u.log.Errorw("user lookup failed", "error", err)
		return errs.ErrInternal
	}

	exists, err := u.resets.ExistsForEmail(ctx, email)
	if err != nil {
		u.log.Errorw("pending reset lookup failed", "error", err)
		return errs.ErrInternal
	}
	if exists {
		// repeat request: keep the original record, still report success
		return nil
	}

	code := confirmation.GenerateCode()
	link := u.siteURL + "/change-password?email=" + confirmation.EncodeEmailForLink(email) + "&code=" + code

	if err := u.mailer.SendPasswordResetMail(ctx, email, link); err != nil {
		u.log.Errorw("reset mail dispatch failed", "email", email, "error", err)
		return errs.ErrMailDispatch
	}

	record := pending.PendingPasswordReset{
		EmailAddress:         email,
		ConfirmationCodeHash: confirmation.HashCode(code),
		ResetLink:            link,
		UserID:               target.ID,
		ExpiresAt:            time.Now().Add(pending.TTL),
	}
	if err := u.resets.Create(ctx, record); err != nil {
		u.log.Errorw("failed to store pending reset", "email", email, "error", err)
		return errs.ErrInternal
	}

	u.log.Infow("pending password reset created", "email", email)
	return nil
}

// CheckRecordExistence reports the user identifier bound to a pending
// reset matching the e-mail and code, for the web tier to decide
// whether the "set new password" form should render.
func (u *Usecase) CheckRecordExistence(ctx context.Context, email, code string) (string, error) {
	email = strings.ToLower(email)

	record, err := u.resets.FindByEmailAndCodeHash(ctx, email, confirmation.HashCode(code))
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return "", errs.ErrRecordNotFound
		}
		u.log.Errorw("pending reset lookup failed", "error", err)
		return "", errs.ErrInternal
	}
	return record.UserID.Hex(), nil
}

// VerifyPendingPasswordReset completes a reset. The supplied userID
// must match the identifier recorded when the reset was requested,
// which stops a stolen link being replayed against another identity.
func (u *Usecase) VerifyPendingPasswordReset(ctx context.Context, userID, email, code, newPassword, confirmNewPassword string) error {
	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		return errs.ErrRecordNotFound
	}
	email = strings.ToLower(email)

	record, err := u.resets.FindByEmailAndCodeHash(ctx, email, confirmation.HashCode(code))
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errs.ErrRecordNotFound
		}
		u.log.Errorw("pending reset lookup failed", "error", err)
		return errs.ErrInternal
	}
	if record.UserID.Hex() != userID {
		return errs.ErrRecordNotFound
	}

	if newPassword != confirmNewPassword || !validation.IsPasswordValid(newPassword) {
		return errs.ErrPasswordInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), u.bcryptCost)
	if err != nil {
		u.log.Errorw("password hashing failed", "error", err)
		return errs.ErrInternal
	}

	if err := u.resets.Complete(ctx, record, string(hashed)); err != nil {
		u.log.Errorw("password reset completion failed", "email", email, "error", err)
		return errs.ErrInternal
	}

	u.log.Infow("password changed", "email", email)
	return nil
}
