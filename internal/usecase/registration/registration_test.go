package registration

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mathdefenders/internal/domain/pending"
	"mathdefenders/internal/domain/user"
	errs "mathdefenders/internal/errors"
)

type fakeUserStorage struct {
	users []user.User
	err   error
}

func (f *fakeUserStorage) EmailExists(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.EmailAddress == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStorage) UsernameExists(_ context.Context, usernameLower string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.UsernameInAllLowercase == usernameLower {
			return true, nil
		}
	}
	return false, nil
}

type fakePendingStorage struct {
	records   []pending.PendingUser
	confirmed *fakeUserStorage
	createErr error
}

func (f *fakePendingStorage) EmailExists(_ context.Context, email string) (bool, error) {
	for _, p := range f.records {
		if p.DesiredEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePendingStorage) UsernameExists(_ context.Context, usernameLower string) (bool, error) {
	for _, p := range f.records {
		if p.DesiredUsernameInAllLowercase == usernameLower {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePendingStorage) Create(_ context.Context, p pending.PendingUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, p)
	return nil
}

func (f *fakePendingStorage) FindByEmailAndCodeHash(_ context.Context, email, codeHash string) (pending.PendingUser, error) {
	for _, p := range f.records {
		if p.DesiredEmail == email && p.EmailConfirmationCodeHash == codeHash {
			return p, nil
		}
	}
	return pending.PendingUser{}, errs.ErrRecordNotFound
}

func (f *fakePendingStorage) Promote(_ context.Context, p pending.PendingUser) error {
	kept := f.records[:0]
	for _, r := range f.records {
		if r.DesiredEmail != p.DesiredEmail {
			kept = append(kept, r)
		}
	}
	f.records = kept
	f.confirmed.users = append(f.confirmed.users, user.User{
		Username:               p.DesiredUsername,
		UsernameInAllLowercase: p.DesiredUsernameInAllLowercase,
		EmailAddress:           p.DesiredEmail,
		HashedPassword:         p.HashedPassword,
	})
	return nil
}

type sentMail struct {
	to       string
	username string
	link     string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendConfirmationMail(_ context.Context, toEmail, username, link string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: toEmail, username: username, link: link})
	return nil
}

type fakeCaptcha struct {
	ok  bool
	err error
}

func (f *fakeCaptcha) Verify(_ context.Context, _ string) (bool, error) {
	return f.ok, f.err
}

type fixture struct {
	uc       *Usecase
	users    *fakeUserStorage
	pendings *fakePendingStorage
	mailer   *fakeMailer
	captcha  *fakeCaptcha
}

func newFixture() *fixture {
	users := &fakeUserStorage{}
	pendings := &fakePendingStorage{confirmed: users}
	mailer := &fakeMailer{}
	captcha := &fakeCaptcha{ok: true}
	// bcrypt minimum cost keeps the tests fast
	uc := NewUsecaseWithCost(users, pendings, mailer, captcha, "https://mathematicalbasedefenders.com", bcrypt.MinCost, zap.NewNop().Sugar())
	return &fixture{uc: uc, users: users, pendings: pendings, mailer: mailer, captcha: captcha}
}

// codeFromLink pulls the plaintext confirmation code back out of the
// link that went into the mail.
func codeFromLink(t *testing.T, link string) string {
	t.Helper()
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("confirmation link does not parse: %v", err)
	}
	code := parsed.Query().Get("code")
	if code == "" {
		t.Fatalf("confirmation link carries no code: %s", link)
	}
	return code
}

func TestCreateAndVerifyPromotesExactlyOneUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.uc.CreatePendingUser(ctx, "testprime@example.com", "testprime", "test12345test", "token")
	if err != nil {
		t.Fatalf("CreatePendingUser() error = %v", err)
	}
	if len(f.pendings.records) != 1 {
		t.Fatalf("pending records = %d, want 1", len(f.pendings.records))
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("mails sent = %d, want 1", len(f.mailer.sent))
	}

	code := codeFromLink(t, f.mailer.sent[0].link)
	if err := f.uc.VerifyPendingUser(ctx, "testprime@example.com", code); err != nil {
		t.Fatalf("VerifyPendingUser() error = %v", err)
	}

	if len(f.pendings.records) != 0 {
		t.Errorf("pending record not removed after promotion")
	}
	if len(f.users.users) != 1 {
		t.Fatalf("confirmed users = %d, want 1", len(f.users.users))
	}
	promoted := f.users.users[0]
	if promoted.Username != "testprime" || promoted.UsernameInAllLowercase != "testprime" {
		t.Errorf("promoted user has wrong username: %+v", promoted)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(promoted.HashedPassword), []byte("test12345test")); err != nil {
		t.Errorf("promoted user's password hash does not verify: %v", err)
	}
}

func TestCreatePendingUserRetrySameRegistrationFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.uc.CreatePendingUser(ctx, "testprime@example.com", "testprime", "test12345test", "token"); err != nil {
		t.Fatalf("first CreatePendingUser() error = %v", err)
	}

	// same e-mail, different username
	err := f.uc.CreatePendingUser(ctx, "testprime@example.com", "otheruser", "test12345test", "token")
	if !errors.Is(err, errs.ErrEmailTaken) {
		t.Errorf("duplicate e-mail: got %v, want ErrEmailTaken", err)
	}

	// same username, different e-mail
	err = f.uc.CreatePendingUser(ctx, "other@example.com", "testprime", "test12345test", "token")
	if !errors.Is(err, errs.ErrUsernameTaken) {
		t.Errorf("duplicate username: got %v, want ErrUsernameTaken", err)
	}

	if len(f.pendings.records) != 1 {
		t.Errorf("pending records = %d, want 1", len(f.pendings.records))
	}
}

func TestCreatePendingUserRejectsTakenConfirmedIdentity(t *testing.T) {
	f := newFixture()
	f.users.users = append(f.users.users, user.User{
		Username:               "Existing",
		UsernameInAllLowercase: "existing",
		EmailAddress:           "existing@example.com",
	})
	ctx := context.Background()

	err := f.uc.CreatePendingUser(ctx, "EXISTING@example.com", "newname", "test12345test", "token")
	if !errors.Is(err, errs.ErrEmailTaken) {
		t.Errorf("confirmed e-mail: got %v, want ErrEmailTaken", err)
	}
	err = f.uc.CreatePendingUser(ctx, "fresh@example.com", "Existing", "test12345test", "token")
	if !errors.Is(err, errs.ErrUsernameTaken) {
		t.Errorf("confirmed username: got %v, want ErrUsernameTaken", err)
	}
}

func TestCreatePendingUserValidation(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		username string
		password string
		want     error
	}{
		{"empty e-mail", "", "validuser", "test12345test", errs.ErrEmailInvalid},
		{"empty username", "a@example.com", "", "test12345test", errs.ErrUsernameInvalid},
		{"unsafe e-mail", "a$b@example.com", "validuser", "test12345test", errs.ErrEmailInvalid},
		{"malformed e-mail", "not-an-email", "validuser", "test12345test", errs.ErrEmailInvalid},
		{"short username", "a@example.com", "ab", "test12345test", errs.ErrUsernameInvalid},
		{"long username", "a@example.com", strings.Repeat("a", 21), "test12345test", errs.ErrUsernameInvalid},
		{"short password", "a@example.com", "validuser", "short1", errs.ErrPasswordInvalid},
		{"password with space", "a@example.com", "validuser", "has space123", errs.ErrPasswordInvalid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture()
			err := f.uc.CreatePendingUser(context.Background(), c.email, c.username, c.password, "token")
			if !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
			if len(f.pendings.records) != 0 {
				t.Errorf("invalid submission still created a record")
			}
		})
	}
}

func TestCreatePendingUserCaptchaRejected(t *testing.T) {
	f := newFixture()
	f.captcha.ok = false

	err := f.uc.CreatePendingUser(context.Background(), "a@example.com", "validuser", "test12345test", "")
	if !errors.Is(err, errs.ErrCaptchaIncomplete) {
		t.Errorf("got %v, want ErrCaptchaIncomplete", err)
	}
	if len(f.pendings.records) != 0 || len(f.mailer.sent) != 0 {
		t.Error("rejected captcha still produced side effects")
	}
}

func TestCreatePendingUserMailFailureWritesNothing(t *testing.T) {
	f := newFixture()
	f.mailer.err = errors.New("provider is down")

	err := f.uc.CreatePendingUser(context.Background(), "a@example.com", "validuser", "test12345test", "token")
	if !errors.Is(err, errs.ErrMailDispatch) {
		t.Errorf("got %v, want ErrMailDispatch", err)
	}
	if len(f.pendings.records) != 0 {
		t.Error("pending record created despite mail dispatch failure")
	}
}

func TestVerifyPendingUserWrongCodeOrEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.uc.CreatePendingUser(ctx, "testprime@example.com", "testprime", "test12345test", "token"); err != nil {
		t.Fatalf("CreatePendingUser() error = %v", err)
	}
	code := codeFromLink(t, f.mailer.sent[0].link)

	if err := f.uc.VerifyPendingUser(ctx, "testprime@example.com", "wrong-code"); !errors.Is(err, errs.ErrRecordNotFound) {
		t.Errorf("wrong code: got %v, want ErrRecordNotFound", err)
	}
	if err := f.uc.VerifyPendingUser(ctx, "wrong@example.com", code); !errors.Is(err, errs.ErrRecordNotFound) {
		t.Errorf("wrong e-mail: got %v, want ErrRecordNotFound", err)
	}

	if len(f.users.users) != 0 {
		t.Error("failed verification still created a user")
	}
	if len(f.pendings.records) != 1 {
		t.Error("failed verification removed the pending record")
	}
}
