package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/service"
	"github.com/LauchlanT/brickshowcase/pkg/httpx"
)

// UserHandler serves POST /api/user: a single dispatcher for every account
// operation. The body is one JSON object selecting the operation through its
// "endpoint" field.
type UserHandler struct {
	Auth       *service.AuthService
	Accounts   *service.AccountService
	SessionTTL time.Duration
}

// userOp is one dispatch table entry: the fields the operation requires, the
// message reported when any is missing, and the bound handler method.
type userOp struct {
	required []string
	missing  string
	handle   func(h *UserHandler, w http.ResponseWriter, r *http.Request, caller string, req request)
}

var userOps = map[string]userOp{
	"login": {
		required: []string{"email", "password"},
		missing:  "Email and password must be sent to log in",
		handle:   (*UserHandler).login,
	},
	"logout": {
		handle: (*UserHandler).logout,
	},
	"register": {
		required: []string{"username", "email", "password", "passwordConfirm"},
		missing:  "Necessary information for registration is missing",
		handle:   (*UserHandler).register,
	},
	"verifyRegistration": {
		required: []string{"verificationCode"},
		missing:  "Verification code must be sent",
		handle:   (*UserHandler).verifyRegistration,
	},
	"resendVerification": {
		required: []string{"email"},
		missing:  "Email to send verification code to must be input",
		handle:   (*UserHandler).resendVerification,
	},
	"cancelRegistration": {
		required: []string{"verificationCode"},
		missing:  "Verification code must be sent",
		handle:   (*UserHandler).cancelRegistration,
	},
	"requestPasswordReset": {
		required: []string{"email"},
		missing:  "Email to send reset code to must be input",
		handle:   (*UserHandler).requestPasswordReset,
	},
	"verifyPasswordReset": {
		required: []string{"code", "password", "passwordConfirm"},
		missing:  "Verification code, password, and confirmation password must be sent",
		handle:   (*UserHandler).verifyPasswordReset,
	},
	"deleteAccount": {
		required: []string{"password"},
		missing:  "Password must be sent to confirm deletion of account",
		handle:   (*UserHandler).deleteAccount,
	},
	"changeEmail": {
		required: []string{"password", "newEmail"},
		missing:  "Password and new email must be sent to request email change",
		handle:   (*UserHandler).changeEmail,
	},
	"verifyChangeEmail": {
		required: []string{"code", "password"},
		missing:  "Verification code and password must be sent to change email",
		handle:   (*UserHandler).verifyChangeEmail,
	},
	"changePassword": {
		required: []string{"password", "newPassword", "newPasswordConfirm"},
		missing:  "Current, new, and new confirmation passwords must be sent to change password",
		handle:   (*UserHandler).changePassword,
	},
	"changeUsername": {
		required: []string{"password", "newUsername"},
		missing:  "Password and new username must be sent to change username",
		handle:   (*UserHandler).changeUsername,
	},
	"getUser": {
		required: []string{"userId"},
		missing:  "userId for user must be specified",
		handle:   (*UserHandler).getUser,
	},
	"searchUsers": {
		required: []string{"sortType", "timeframe", "sortOrder"},
		missing:  "Search sortType, timeframe, and sortOrder must be specified",
		handle:   (*UserHandler).searchUsers,
	},
}

// ServeHTTP godoc
//
//	@Summary		User Operations Endpoint
//	@Description	Single dispatcher for all account operations. The request body is one JSON
//	@Description	object whose "endpoint" field names the operation; remaining fields are the
//	@Description	operation's parameters. The response is always HTTP 200 with a
//	@Description	{result, error} envelope where exactly one field is non-null.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			body	body		object	true	"Operation request with endpoint field"
//	@Success		200		{object}	Envelope
//	@Router			/api/user [post].
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	op, ok := userOps[req.str("endpoint")]
	if !ok {
		writeError(w, "Requested endpoint does not exist")
		return
	}
	for _, field := range op.required {
		if !req.has(field) {
			writeError(w, op.missing)
			return
		}
	}
	op.handle(h, w, r, httpx.CallerID(r.Context()), req)
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request, caller string, req request) {
	session, err := h.Auth.Login(r.Context(), caller, req.str("email"), req.str("password"))
	if err != nil {
		if errors.Is(err, service.ErrLoginServer) {
			clearSessionCookie(w)
		}
		writeServiceError(r, w, err)
		return
	}
	setSessionCookie(w, session.ID, int(h.SessionTTL.Seconds()))
	writeResult(w, "Login successful")
}

func (h *UserHandler) logout(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Auth.Logout(r.Context(), caller, sessionCookieValue(r)); err != nil {
		writeServiceError(r, w, err)
		return
	}
	clearSessionCookie(w)
	writeResult(w, "Logout successful")
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request, caller string, req request) {
	email := req.str("email")
	err := h.Accounts.Register(r.Context(), caller,
		req.str("username"), email, req.str("password"), req.str("passwordConfirm"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, fmt.Sprintf("Registration successful, verification email sent to %s", email))
}

func (h *UserHandler) verifyRegistration(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Accounts.VerifyRegistration(r.Context(), caller, req.str("verificationCode")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Account verified successfully, you can now log in!")
}

func (h *UserHandler) resendVerification(w http.ResponseWriter, r *http.Request, caller string, req request) {
	email := req.str("email")
	if err := h.Accounts.ResendVerification(r.Context(), email); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, fmt.Sprintf("New verification code sent to %s", email))
}

func (h *UserHandler) cancelRegistration(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Accounts.CancelRegistration(r.Context(), req.str("verificationCode")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Registration cancellation successful, all account details deleted")
}

func (h *UserHandler) requestPasswordReset(w http.ResponseWriter, r *http.Request, caller string, req request) {
	email := req.str("email")
	if err := h.Accounts.RequestPasswordReset(r.Context(), caller, email); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, fmt.Sprintf("Password reset link sent to %s", email))
}

func (h *UserHandler) verifyPasswordReset(w http.ResponseWriter, r *http.Request, caller string, req request) {
	err := h.Accounts.VerifyPasswordReset(r.Context(), caller,
		req.str("code"), req.str("password"), req.str("passwordConfirm"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Password updated successfully!")
}

func (h *UserHandler) deleteAccount(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Accounts.DeleteAccount(r.Context(), caller, req.str("password")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	clearSessionCookie(w)
	writeResult(w, "Account successfully deleted")
}

func (h *UserHandler) changeEmail(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Accounts.ChangeEmail(r.Context(), caller, req.str("password"), req.str("newEmail")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Email update request sent, please check your new email account for a verification email.")
}

func (h *UserHandler) verifyChangeEmail(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Accounts.VerifyChangeEmail(r.Context(), req.str("code"), req.str("password")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Email updated successfully!")
}

func (h *UserHandler) changePassword(w http.ResponseWriter, r *http.Request, caller string, req request) {
	err := h.Accounts.ChangePassword(r.Context(), caller,
		req.str("password"), req.str("newPassword"), req.str("newPasswordConfirm"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Password updated successfully!")
}

func (h *UserHandler) changeUsername(w http.ResponseWriter, r *http.Request, caller string, req request) {
	if err := h.Accounts.ChangeUsername(r.Context(), caller, req.str("password"), req.str("newUsername")); err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, "Username updated successfully!")
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request, caller string, req request) {
	profile, note, err := h.Accounts.GetUser(r.Context(), req.str("userId"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	if profile != nil {
		writeResult(w, profile)
		return
	}
	writeResult(w, note)
}

func (h *UserHandler) searchUsers(w http.ResponseWriter, r *http.Request, caller string, req request) {
	profiles, err := h.Accounts.SearchUsers(r.Context(),
		req.str("sortType"), req.str("timeframe"), req.str("sortOrder"),
		req.str("searchTerm"), req.str("offset"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	writeResult(w, profiles)
}
