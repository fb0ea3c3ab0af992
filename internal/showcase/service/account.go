package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
	"github.com/LauchlanT/brickshowcase/internal/showcase/mailer"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/LauchlanT/brickshowcase/pkg/cryptox"
	"github.com/LauchlanT/brickshowcase/pkg/idx"
	"github.com/LauchlanT/brickshowcase/pkg/slogx"
)

const (
	registrationCodeTTL = 24 * time.Hour
	resetCodeTTL        = time.Hour
	emailChangeCodeTTL  = time.Hour

	searchPageSize = 12

	defaultIcon        = "default.jpg"
	defaultDescription = "Welcome to my homepage!"

	// deletedPrefix seeds the placeholder usernames claimed for anonymized
	// accounts: DeletedUser1, DeletedUser2, ...
	deletedPrefix = "DeletedUser"
)

var (
	ErrUsernameTaken         = Fault("Username is already in use.")
	ErrEmailTaken            = Fault("Email is already in use.")
	ErrEmailAndUsernameTaken = Fault("Email and username are already in use.")
	ErrPasswordNotCorrect    = Fault("The password is not correct")
	ErrEmailInUse            = Fault("There is already an account using this email")

	ErrVerificationMissing    = Fault("This verification code does not exist anymore, but you can request a new verification email")
	ErrVerificationExpired    = Fault("This verification code has expired, you can request a new verification email however")
	ErrVerificationNotPending = Fault("This verification code is for a user that is not pending verification")

	ErrResetCodeMissing = Fault("This reset code does not exist anymore, but you can request a new password reset email")
	ErrResetCodeExpired = Fault("This reset code has expired, you can request a new password reset email however")

	ErrEmailChangeCodeMissing = Fault("This reset code does not exist anymore, but you can request a new email change")
	ErrEmailChangeCodeExpired = Fault("This code has expired, you can request a new email change however")
	ErrEmailHasSeparator      = Fault("Sorry, but email addresses containing '&&' are not currently supported.")

	ErrInvalidSortType  = Fault("Invalid sort type")
	ErrInvalidTimeframe = Fault("Invalid timeframe")
	ErrInvalidSortOrder = Fault("Invalid sort order")
)

type AccountService struct {
	Store      store.Store
	Mailer     mailer.Mailer
	RootDomain string
}

// Register creates a pending account and mails a 24h verification code.
// Conflict checks and the claim+user inserts run in one transaction; the
// unique indexes are the backstop for races the pre-checks miss.
func (s *AccountService) Register(ctx context.Context, callerID, username, email, password, passwordConfirm string) error {
	// 1. Only anonymous callers can register
	if callerID != "" {
		return ErrAlreadyLoggedIn
	}

	// 2. Validate inputs; password first, matching the frontend's order
	if err := ValidatePassword(password, passwordConfirm); err != nil {
		return err
	}
	if err := ValidateUsername(username); err != nil {
		return err
	}

	// 3. Hash outside the transaction, it is the slow part
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	userID := idx.New().String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		claimed, err := tx.Usernames().IsClaimed(ctx, username)
		if err != nil {
			return err
		}
		_, emailErr := tx.Users().GetUserByEmail(ctx, email)
		emailTaken := emailErr == nil
		if emailErr != nil && !errors.Is(emailErr, store.ErrNotFound) {
			return emailErr
		}
		switch {
		case claimed && emailTaken:
			return ErrEmailAndUsernameTaken
		case claimed:
			return ErrUsernameTaken
		case emailTaken:
			return ErrEmailTaken
		}

		if err := tx.Usernames().Claim(ctx, username); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}
		err = tx.Users().CreateUser(ctx, domain.User{
			ID:           userID,
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			Icon:         defaultIcon,
			Description:  defaultDescription,
			JoinDate:     time.Now().UTC(),
			Status:       domain.UserStatusPending,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrEmailTaken
		}
		return err
	})
	if err != nil {
		return err
	}

	// 4. Issue the verification code and mail it
	code, err := s.issueCode(ctx, userID, "", registrationCodeTTL)
	if err != nil {
		return Fault("Error creating verification code, please request a new verification code")
	}
	s.sendMail(ctx, email, "MOCShare Account Verification", fmt.Sprintf(
		"Thank you for signing up to MOCShare, %s!\n\n"+
			"Please click this link to activate your account: https://www.%s/verify/account/%s\n\n"+
			"If you did not wish to create an account, click \"Cancel Registration\" after following the link above.\n",
		username, s.RootDomain, code))
	return nil
}

// VerifyRegistration activates a pending account from an emailed code.
func (s *AccountService) VerifyRegistration(ctx context.Context, callerID, code string) error {
	if callerID != "" {
		return ErrAlreadyLoggedIn
	}
	record, err := s.pendingVerification(ctx, code)
	if err != nil {
		return err
	}
	if err := s.Store.Users().UpdateStatus(ctx, record.UserID, domain.UserStatusActive); err != nil {
		return err
	}
	return s.Store.Verifications().DeleteVerification(ctx, code)
}

// pendingVerification loads a registration code and checks it is usable:
// unexpired and belonging to a still-pending account. Stale codes are deleted
// as they are discovered.
func (s *AccountService) pendingVerification(ctx context.Context, code string) (domain.VerificationRecord, error) {
	record, err := s.Store.Verifications().GetVerification(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.VerificationRecord{}, ErrVerificationMissing
		}
		return domain.VerificationRecord{}, err
	}
	if record.Expired(time.Now().UTC()) {
		_ = s.Store.Verifications().DeleteVerification(ctx, code)
		return domain.VerificationRecord{}, ErrVerificationExpired
	}
	user, err := s.Store.Users().GetUserByID(ctx, record.UserID)
	if err != nil {
		return domain.VerificationRecord{}, err
	}
	if user.Status != domain.UserStatusPending {
		_ = s.Store.Verifications().DeleteVerification(ctx, code)
		return domain.VerificationRecord{}, ErrVerificationNotPending
	}
	return record, nil
}

// ResendVerification issues a fresh registration code for a pending account.
func (s *AccountService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Faultf("An account for %s is not pending verification", email)
		}
		return err
	}
	if user.Status != domain.UserStatusPending {
		return Faultf("An account for %s is not pending verification", email)
	}
	code, err := s.issueCode(ctx, user.ID, "", registrationCodeTTL)
	if err != nil {
		return Fault("Error sending verification code, please request a new verification code")
	}
	s.sendMail(ctx, email, "MOCShare Account Verification Request", fmt.Sprintf(
		"Thank you for signing up to MOCShare!\n\n"+
			"Please click this link to activate your account: https://www.%s/verify/account/%s\n\n"+
			"If you did not wish to create an account, click \"Cancel Registration\" after following the link above.\n",
		s.RootDomain, code))
	return nil
}

// CancelRegistration deletes a pending account via its verification code.
func (s *AccountService) CancelRegistration(ctx context.Context, code string) error {
	record, err := s.pendingVerification(ctx, code)
	if err != nil {
		return err
	}
	// Anonymization also deletes the verification record itself
	return s.anonymize(ctx, record.UserID)
}

// RequestPasswordReset mails a 1h reset code. Note the lookup failures report
// differently from a success, so this endpoint discloses whether an account
// exists for the address. Kept for parity with the frontend's messaging.
func (s *AccountService) RequestPasswordReset(ctx context.Context, callerID, email string) error {
	if callerID != "" {
		return ErrAlreadyLoggedIn
	}
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Status == domain.UserStatusDeleted || user.Status == domain.UserStatusPending {
		return ErrNotActivated
	}
	code, err := s.issueCode(ctx, user.ID, "", resetCodeTTL)
	if err != nil {
		return Fault("Error sending verification code, please request a new password reset")
	}
	s.sendMail(ctx, email, "MOCShare Password Reset Request", fmt.Sprintf(
		"Please click this link to set your new password: https://www.%s/verify/password/%s\n\n"+
			"This link is valid for one hour - you can request another reset if it expires.\n",
		s.RootDomain, code))
	return nil
}

// VerifyPasswordReset sets a new password from an emailed reset code.
func (s *AccountService) VerifyPasswordReset(ctx context.Context, callerID, code, password, passwordConfirm string) error {
	if callerID != "" {
		return ErrAlreadyLoggedIn
	}
	if err := ValidatePassword(password, passwordConfirm); err != nil {
		return err
	}
	record, err := s.Store.Verifications().GetVerification(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrResetCodeMissing
		}
		return err
	}
	if record.Expired(time.Now().UTC()) {
		_ = s.Store.Verifications().DeleteVerification(ctx, code)
		return ErrResetCodeExpired
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, record.UserID, hash); err != nil {
		return err
	}
	return s.Store.Verifications().DeleteVerification(ctx, code)
}

// ChangePassword rotates the password for a logged-in caller.
func (s *AccountService) ChangePassword(ctx context.Context, callerID, password, newPassword, newPasswordConfirm string) error {
	if callerID == "" {
		return Fault("You must be logged in to change your password")
	}
	if err := ValidatePassword(newPassword, newPasswordConfirm); err != nil {
		return err
	}
	if err := s.verifyPassword(ctx, callerID, password); err != nil {
		return err
	}
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, callerID, hash)
}

// ChangeEmail starts the two-phase email change: the code mailed to the new
// address carries the pending email, URL-escaped, after a "&&" separator.
func (s *AccountService) ChangeEmail(ctx context.Context, callerID, password, newEmail string) error {
	if callerID == "" {
		return Fault("You must be logged in to change your email")
	}
	if err := s.verifyPassword(ctx, callerID, password); err != nil {
		return err
	}
	_, err := s.Store.Users().GetUserByEmail(ctx, newEmail)
	if err == nil {
		return ErrEmailInUse
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	code, err := s.issueCode(ctx, callerID, newEmail, emailChangeCodeTTL)
	if err != nil {
		return Fault("Error sending verification code, please try again")
	}
	s.sendMail(ctx, newEmail, "MOCShare Email Change Request", fmt.Sprintf(
		"Please click this link to verify your new email: https://www.%s/verify/email/%s\n\n"+
			"This link is valid for one hour - you can make another request if it expires.\n",
		s.RootDomain, code))
	return nil
}

// VerifyChangeEmail completes the email change. The password is re-verified
// against the code's owner, not the (possibly anonymous) caller, and the new
// address is re-checked since it may have been claimed since the request.
func (s *AccountService) VerifyChangeEmail(ctx context.Context, code, password string) error {
	parts := strings.Split(code, "&&")
	if len(parts) > 2 {
		return ErrEmailHasSeparator
	}
	var newEmail string
	if len(parts) == 2 {
		var err error
		newEmail, err = url.QueryUnescape(parts[1])
		if err != nil {
			return ErrEmailChangeCodeMissing
		}
	}

	record, err := s.Store.Verifications().GetVerification(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmailChangeCodeMissing
		}
		return err
	}
	if record.Expired(time.Now().UTC()) {
		_ = s.Store.Verifications().DeleteVerification(ctx, code)
		return ErrEmailChangeCodeExpired
	}
	if err := s.verifyPassword(ctx, record.UserID, password); err != nil {
		return err
	}
	_, err = s.Store.Users().GetUserByEmail(ctx, newEmail)
	if err == nil {
		return ErrEmailInUse
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err := s.Store.Users().UpdateEmail(ctx, record.UserID, newEmail); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrEmailInUse
		}
		return err
	}
	return s.Store.Verifications().DeleteVerification(ctx, code)
}

// ChangeUsername swaps the caller's username claim in one transaction so the
// old name is only released once the new one is secured.
func (s *AccountService) ChangeUsername(ctx context.Context, callerID, password, newUsername string) error {
	if callerID == "" {
		return Fault("You must be logged in to change your username")
	}
	if err := ValidateUsername(newUsername); err != nil {
		return err
	}
	if err := s.verifyPassword(ctx, callerID, password); err != nil {
		return err
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		claimed, err := tx.Usernames().IsClaimed(ctx, newUsername)
		if err != nil {
			return err
		}
		if claimed {
			return ErrUsernameTaken
		}
		if err := tx.Usernames().Claim(ctx, newUsername); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}
		user, err := tx.Users().GetUserByID(ctx, callerID)
		if err != nil {
			return err
		}
		if err := tx.Users().UpdateUsername(ctx, callerID, newUsername); err != nil {
			return err
		}
		return tx.Usernames().Release(ctx, user.Username)
	})
}

// DeleteAccount anonymizes the caller's account after a password re-check.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID, password string) error {
	if callerID == "" {
		return Fault("You must be logged in to delete your account")
	}
	if err := s.verifyPassword(ctx, callerID, password); err != nil {
		return err
	}
	return s.anonymize(ctx, callerID)
}

// anonymize is the account deletion transaction. Sessions and codes go, the
// user row is overwritten in place under a DeletedUser<N> placeholder, and
// the original username claim is released. Content stays attributed to the
// anonymized row.
func (s *AccountService) anonymize(ctx context.Context, userID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().DeleteUserSessions(ctx, userID); err != nil {
			return err
		}
		if err := tx.Verifications().DeleteUserVerifications(ctx, userID); err != nil {
			return err
		}

		latest, err := tx.Usernames().LatestDeletedPlaceholder(ctx)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			latest = deletedPrefix + "0"
		}
		n, _ := strconv.Atoi(latest[len(deletedPrefix):])
		placeholder := fmt.Sprintf("%s%d", deletedPrefix, n+1)

		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.Usernames().Claim(ctx, placeholder); err != nil {
			return err
		}
		// The mangled email frees the address for re-registration while
		// remaining recoverable by an operator. The placeholder prefix keeps
		// it unique when the same address goes through repeated deletions.
		if err := tx.Users().Anonymize(ctx, userID, placeholder, placeholder+"&&"+user.Email); err != nil {
			return err
		}
		return tx.Usernames().Release(ctx, user.Username)
	})
}

// GetUser returns the public profile for an active user, or a note describing
// why the profile is unavailable for every other status.
func (s *AccountService) GetUser(ctx context.Context, userID string) (*domain.Profile, string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	switch user.Status {
	case domain.UserStatusActive:
		profile := domain.NewProfile(user)
		return &profile, "", nil
	case domain.UserStatusDeleted:
		return nil, "This user's account has been deleted", nil
	case domain.UserStatusPending:
		return nil, "This user's account is pending verification", nil
	case domain.UserStatusFlagged:
		return nil, "This user's account has been flagged for review", nil
	default:
		return nil, "This user's account is not available", nil
	}
}

// SearchUsers lists active user profiles with MOC counts. Pages are a fixed
// 12 entries; a non-numeric offset is ignored rather than rejected.
func (s *AccountService) SearchUsers(ctx context.Context, sortType, timeframe, sortOrder, searchTerm, offset string) ([]domain.Profile, error) {
	var sortBy store.UserSort
	switch sortType {
	case "date", "name", "mocnumber":
		sortBy = store.UserSort(sortType)
	default:
		return nil, ErrInvalidSortType
	}

	now := time.Now().UTC()
	var joinedAfter time.Time
	switch timeframe {
	case "hour":
		joinedAfter = now.Add(-time.Hour)
	case "day":
		joinedAfter = now.Add(-24 * time.Hour)
	case "week":
		joinedAfter = now.Add(-7 * 24 * time.Hour)
	case "month":
		joinedAfter = now.AddDate(0, -1, 0)
	case "year":
		joinedAfter = now.AddDate(-1, 0, 0)
	case "all":
	default:
		return nil, ErrInvalidTimeframe
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		return nil, ErrInvalidSortOrder
	}

	var off int64
	if f, err := strconv.ParseFloat(offset, 64); err == nil && f >= 0 && f == float64(int64(f)) {
		off = int64(f)
	}

	profiles, err := s.Store.Users().Search(ctx, store.UserSearch{
		Term:        searchTerm,
		JoinedAfter: joinedAfter,
		SortBy:      sortBy,
		Descending:  sortOrder == "desc",
		Limit:       searchPageSize,
		Offset:      off,
	})
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

func (s *AccountService) verifyPassword(ctx context.Context, userID, password string) error {
	return verifyUserPassword(ctx, s.Store, userID, password)
}

// verifyUserPassword re-checks a password for sensitive operations. Deleted
// accounts always fail: their stored hash is not a valid PHC string.
func verifyUserPassword(ctx context.Context, st store.Store, userID, password string) error {
	user, err := st.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPasswordNotCorrect
		}
		return err
	}
	if user.Status == domain.UserStatusDeleted {
		return ErrPasswordNotCorrect
	}
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return ErrPasswordNotCorrect
	}
	return nil
}

// issueCode stores a fresh verification code for the user. For email changes
// the pending address rides along in the code itself after a "&&" separator.
func (s *AccountService) issueCode(ctx context.Context, userID, pendingEmail string, ttl time.Duration) (string, error) {
	code, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}
	if pendingEmail != "" {
		code += "&&" + url.QueryEscape(pendingEmail)
	}
	err = s.Store.Verifications().CreateVerification(ctx, domain.VerificationRecord{
		Code:   code,
		UserID: userID,
		Expiry: time.Now().UTC().Add(ttl),
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// sendMail delivers best-effort. The original flow never surfaced mail
// failures to the caller, so neither does this one.
func (s *AccountService) sendMail(ctx context.Context, to, subject, body string) {
	if err := s.Mailer.Send(ctx, to, subject, body); err != nil {
		slogx.FromContext(ctx).Error("failed to send mail",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.Any("error", err),
		)
	}
}
