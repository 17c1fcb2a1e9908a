package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/auth"
	"github.com/dmitrijs2005/jobboard/internal/server/httpx"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = common.NewError(common.ErrorValidation, "invalid request body")

type Handler struct {
	users   *services.UserService
	jobs    *services.JobService
	avatars *services.AvatarService
	logger  logging.Logger
}

func NewHandler(users *services.UserService, jobs *services.JobService, avatars *services.AvatarService, logger logging.Logger) *Handler {
	return &Handler{users: users, jobs: jobs, avatars: avatars, logger: logger}
}

// fail writes err and logs it if it is not a client error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if httpx.StatusFor(err) == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
		)
	}
	httpx.WriteError(w, err)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errInvalidBody
	}
	return body, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errInvalidBody
	}
	return nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.users.Signup(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, res)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.users.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.fail(w, r, common.ErrorNotAuthorized)
		return
	}

	user, err := h.users.Me(r.Context(), identity.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) CreateAvatarUpload(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.fail(w, r, common.ErrorNotAuthorized)
		return
	}

	upload, err := h.avatars.CreateUpload(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotConfigured) {
			h.logger.Debug(r.Context(), "avatar upload requested but storage is disabled")
		}
		h.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, upload)
}
