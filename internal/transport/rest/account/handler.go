package account

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/app/account/usecases/register_user"
	"github.com/murkotick/storefront-service/internal/transport/rest/httpx"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type registerReply struct {
	Message string   `json:"message"`
	User    userJSON `json:"user"`
}

type Handler struct {
	register *register_user.Interactor
	log      logrus.FieldLogger
}

func NewHandler(register *register_user.Interactor, log logrus.FieldLogger) *Handler {
	return &Handler{register: register, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/auth/register", h.RegisterUser).Methods(http.MethodPost)
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	var missing []httpx.FieldError
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
	} {
		if f.value == "" {
			missing = append(missing, httpx.FieldError{Field: f.name, Description: "is required"})
		}
	}
	if len(missing) > 0 {
		httpx.WriteError(w, h.log, httpx.InvalidArgument("name, email and password are required", missing...))
		return
	}

	u, err := h.register.Execute(r.Context(), register_user.Request{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	h.log.WithField("user_id", u.ID()).Info("user registered")
	httpx.WriteJSON(w, http.StatusCreated, registerReply{
		Message: "user registered",
		User:    userJSON{ID: u.ID(), Name: u.Name(), Email: u.Email(), Role: string(u.Role())},
	})
}
